package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
)

// PaymentOutcomeRequest is the widget callback payload. Exactly one outcome
// arrives per payment attempt.
type PaymentOutcomeRequest struct {
	Status    string `json:"status" binding:"required"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

// HandlePaymentOutcome resolves a pending payment collection with the
// widget's outcome. A second callback for the same order finds no pending
// collection and is rejected.
func HandlePaymentOutcome(bridge *payment.Bridge, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req PaymentOutcomeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		var result payment.Result
		switch req.Status {
		case "success":
			if req.PaymentID == "" {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "payment_id is required for success"})
				return
			}
			result = payment.Result{Outcome: payment.OutcomeCaptured, PaymentID: req.PaymentID}
		case "failure":
			result = payment.Result{Outcome: payment.OutcomeFailed, Reason: req.Reason}
		case "dismissed":
			result = payment.Result{Outcome: payment.OutcomeDismissed}
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be success, failure or dismissed"})
			return
		}

		if err := bridge.Resolve(orderID, result); err != nil {
			logger.Warn("Payment outcome had no pending collection",
				zap.Int64("order_id", orderID),
				zap.String("status", req.Status),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending payment for this order"})
			return
		}

		logger.Info("Payment outcome resolved",
			zap.Int64("order_id", orderID),
			zap.String("status", req.Status),
		)
		c.JSON(http.StatusOK, gin.H{"status": "accepted"})
	}
}
