package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/api/middleware"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/cart"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
)

// AddItemRequest is the add-to-cart payload. Name, price and images are
// denormalized here at add time; they are not re-fetched later.
type AddItemRequest struct {
	ProductID    int64             `json:"product_id" binding:"required"`
	VariationID  *int64            `json:"variation_id,omitempty"`
	Name         string            `json:"name" binding:"required"`
	Price        decimal.Decimal   `json:"price" binding:"required"`
	RegularPrice *decimal.Decimal  `json:"regular_price,omitempty"`
	Quantity     int               `json:"quantity"`
	Images       []string          `json:"images,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// ApplyCouponRequest carries a discount code.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CartResponse is the cart snapshot with its derived aggregates and quote.
type CartResponse struct {
	Items      []domain.CartLine `json:"items"`
	ItemCount  int               `json:"item_count"`
	CouponCode string            `json:"coupon_code,omitempty"`
	Quote      pricing.Quote     `json:"quote"`
	Message    string            `json:"message,omitempty"`
}

func buildCartResponse(c *domain.Cart, pricingCfg pricing.Config, message string) CartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartLine{}
	}
	return CartResponse{
		Items:      items,
		ItemCount:  c.ItemCount(),
		CouponCode: c.CouponCode,
		// The COD surcharge is decided at checkout, not in the cart view.
		Quote:   pricingCfg.BuildQuote(c, domain.PaymentMethodOnline),
		Message: message,
	}
}

func HandleCartGet(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		snapshot, err := carts.Get(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, buildCartResponse(snapshot, pricingCfg, ""))
	}
}

func HandleCartAddItem(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		line := domain.CartLine{
			ProductID:    req.ProductID,
			VariationID:  req.VariationID,
			Name:         req.Name,
			Price:        req.Price,
			RegularPrice: req.RegularPrice,
			Quantity:     req.Quantity,
			Images:       req.Images,
			Attributes:   req.Attributes,
		}

		snapshot, err := carts.AddItem(c.Request.Context(), sessionID, line)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		logger.Info("Item added to cart",
			zap.String("session_id", sessionID),
			zap.String("line_key", line.Key()),
			zap.Int("item_count", snapshot.ItemCount()),
		)
		c.JSON(http.StatusOK, buildCartResponse(snapshot, pricingCfg, ""))
	}
}

func HandleCartIncrement(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return cartLineOp(carts, pricingCfg, logger, carts.Increment)
}

func HandleCartDecrement(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return cartLineOp(carts, pricingCfg, logger, carts.Decrement)
}

func HandleCartRemoveItem(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return cartLineOp(carts, pricingCfg, logger, carts.RemoveItem)
}

func cartLineOp(
	carts *cart.Service,
	pricingCfg pricing.Config,
	logger *zap.Logger,
	op func(ctx context.Context, sessionID, key string) (*domain.Cart, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		snapshot, err := op(c.Request.Context(), sessionID, c.Param("key"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, buildCartResponse(snapshot, pricingCfg, ""))
	}
}

func HandleCouponApply(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		var req ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		result, snapshot, err := carts.ApplyCoupon(c.Request.Context(), sessionID, req.Code)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if !result.Valid {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Message})
			return
		}

		logger.Info("Coupon applied",
			zap.String("session_id", sessionID),
			zap.String("code", snapshot.CouponCode),
		)
		c.JSON(http.StatusOK, buildCartResponse(snapshot, pricingCfg, result.Message))
	}
}

func HandleCouponRemove(carts *cart.Service, pricingCfg pricing.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing cart session"})
			return
		}

		snapshot, err := carts.RemoveCoupon(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, buildCartResponse(snapshot, pricingCfg, ""))
	}
}
