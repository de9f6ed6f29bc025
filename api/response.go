package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airtickets/internal/apperr"
)

// writeError maps the error taxonomy to HTTP status codes. Clients only ever
// see the classified message, never internals.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDependency:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
