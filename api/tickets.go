package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/auth"
	"github.com/Domenick1991/airtickets/internal/service/tickets"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/confirmation", h.confirm)
}

func (h *TicketHandler) confirm(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.New(apperr.KindUnauthenticated, "missing credential"))
		return
	}

	var req tickets.BookingDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	confirmation, err := h.service.Confirm(c.Request.Context(), claims, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": confirmation.Receipt})
}
