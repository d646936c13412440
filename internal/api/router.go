package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/api/handlers"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/api/middleware"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/cart"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/checkout"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/config"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	carts *cart.Service,
	orchestrator *checkout.Orchestrator,
	bridge *payment.Bridge,
	pricingCfg pricing.Config,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"POST /v1/cart/items/:key/increment",
				"POST /v1/cart/items/:key/decrement",
				"DELETE /v1/cart/items/:key",
				"POST /v1/cart/coupon",
				"DELETE /v1/cart/coupon",
				"POST /v1/checkout",
				"POST /v1/payments/:order_id/outcome",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Session routes (cart token issued when absent)
		sessionRoutes := v1.Group("")
		sessionRoutes.Use(middleware.SessionMiddleware())
		{
			sessionRoutes.GET("/cart", handlers.HandleCartGet(carts, pricingCfg, logger))
			sessionRoutes.POST("/cart/items", handlers.HandleCartAddItem(carts, pricingCfg, logger))
			sessionRoutes.POST("/cart/items/:key/increment", handlers.HandleCartIncrement(carts, pricingCfg, logger))
			sessionRoutes.POST("/cart/items/:key/decrement", handlers.HandleCartDecrement(carts, pricingCfg, logger))
			sessionRoutes.DELETE("/cart/items/:key", handlers.HandleCartRemoveItem(carts, pricingCfg, logger))
			sessionRoutes.POST("/cart/coupon", handlers.HandleCouponApply(carts, pricingCfg, logger))
			sessionRoutes.DELETE("/cart/coupon", handlers.HandleCouponRemove(carts, pricingCfg, logger))
			sessionRoutes.POST("/checkout", handlers.HandleCheckoutSubmit(orchestrator, logger))
		}

		// Payment widget callback (identified by order id, not session)
		v1.POST("/payments/:order_id/outcome", handlers.HandlePaymentOutcome(bridge, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
