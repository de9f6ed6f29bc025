package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/service/account"
)

type AccountHandler struct {
	service account.AccountUseCase
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func NewAccountHandler(service account.AccountUseCase) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/password-reset", h.resetPassword)
}

func (h *AccountHandler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	result, err := h.service.ResetPassword(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email": result.Email, "receipt_id": result.ReceiptID})
}
