package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/api/middleware"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/checkout"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
)

// CheckoutRequest is the checkout submission payload.
type CheckoutRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	WhatsApp      string `json:"whatsapp"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	City          string `json:"city"`
	State         string `json:"state"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// CheckoutResponse confirms a finalized order.
type CheckoutResponse struct {
	OrderID           int64         `json:"order_id"`
	Quote             pricing.Quote `json:"quote"`
	PaymentID         string        `json:"payment_id,omitempty"`
	PaymentCaptured   bool          `json:"payment_captured"`
	StatusSyncPending bool          `json:"status_sync_pending,omitempty"`
}

// HandleCheckoutSubmit runs the orchestrator for the session's cart. For
// online payment the request completes when the widget outcome arrives via
// the payments callback, or when the wait times out.
func HandleCheckoutSubmit(orchestrator *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		conf, err := orchestrator.Submit(c.Request.Context(), sessionID, checkout.SubmitRequest{
			Form: domain.CheckoutForm{
				Name:     req.Name,
				Email:    req.Email,
				Phone:    req.Phone,
				WhatsApp: req.WhatsApp,
				Address:  req.Address,
				Pincode:  req.Pincode,
				City:     req.City,
				State:    req.State,
				Notes:    req.Notes,
			},
			PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}

		logger.Info("Checkout completed",
			zap.String("session_id", sessionID),
			zap.Int64("order_id", conf.OrderID),
			zap.Bool("payment_captured", conf.PaymentCaptured),
			zap.Bool("status_sync_pending", conf.StatusSyncPending),
		)
		c.JSON(http.StatusOK, CheckoutResponse{
			OrderID:           conf.OrderID,
			Quote:             conf.Quote,
			PaymentID:         conf.PaymentID,
			PaymentCaptured:   conf.PaymentCaptured,
			StatusSyncPending: conf.StatusSyncPending,
		})
	}
}
