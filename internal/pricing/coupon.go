package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CouponResult is the outcome of validating a code against a subtotal.
// Validation is a pure function: no hidden state, no network.
type CouponResult struct {
	Valid    bool
	Discount decimal.Decimal
	Message  string
}

// coupon is one entry in the closed, hardcoded code set.
type coupon struct {
	minSubtotal decimal.Decimal
	percent     int64 // percentage of subtotal, 0 when flat
	flat        decimal.Decimal
}

// The storefront recognizes exactly two codes. Anything else is invalid.
var coupons = map[string]coupon{
	"FIRST30": {
		minSubtotal: decimal.NewFromInt(1000),
		percent:     30,
	},
	"WELCOME100": {
		minSubtotal: decimal.NewFromInt(500),
		flat:        decimal.NewFromInt(100),
	},
}

// ValidateCoupon maps (code, subtotal) to a discount or a rejection reason.
// Codes are case-insensitive. Deterministic: identical inputs always yield
// identical results.
func ValidateCoupon(code string, subtotal decimal.Decimal) CouponResult {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return CouponResult{Message: "Invalid coupon code", Discount: decimal.Zero}
	}

	if subtotal.LessThan(c.minSubtotal) {
		return CouponResult{
			Message:  fmt.Sprintf("Minimum order ₹%s required", c.minSubtotal.StringFixed(0)),
			Discount: decimal.Zero,
		}
	}

	discount := c.flat
	if c.percent > 0 {
		discount = subtotal.Mul(decimal.NewFromInt(c.percent)).
			Div(decimal.NewFromInt(100)).Round(0)
	}

	return CouponResult{
		Valid:    true,
		Discount: discount,
		Message:  fmt.Sprintf("Coupon applied: ₹%s off", discount.StringFixed(0)),
	}
}
