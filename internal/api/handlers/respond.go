package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/checkout"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

// respondError maps service errors to HTTP responses. Upstream failures
// surface as a generic checkout notice; validation and payment outcomes keep
// enough detail for the form to recover.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *apperrors.ErrValidation
		conflictErr   *apperrors.ErrConflict
		notFoundErr   *apperrors.ErrNotFound
		upstreamErr   *apperrors.ErrUpstream
		paymentErr    *checkout.ErrPaymentFailed
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "a submission is already processing"})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.As(err, &paymentErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "payment failed",
			"code":  "payment_failed",
		})
	case errors.Is(err, checkout.ErrPaymentDismissed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "payment was not completed",
			"code":  "payment_dismissed",
		})
	case errors.As(err, &upstreamErr):
		logger.Error("Upstream call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout failed, please try again"})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
