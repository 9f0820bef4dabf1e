package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"RestaurantPOS/internal/domain/payment"

	"github.com/gin-gonic/gin"
)

type PaymentInitializer interface {
	InitializeTransaction(ctx context.Context, req payment.InitializeRequest) (payment.InitializeResponse, error)
}

type PaymentHandler struct {
	service PaymentInitializer
}

func NewPaymentHandler(s PaymentInitializer) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) InitializeTransaction(c *gin.Context) {
	var req payment.InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "Invalid initialize-transaction body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	res, err := h.service.InitializeTransaction(c.Request.Context(), req)
	if err != nil {
		var perr *payment.Error
		if errors.As(err, &perr) {
			c.JSON(perr.Status, gin.H{"message": perr.Message})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": payment.GenericMessage})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
