// Package pricing derives the payable amount for a cart from independent,
// composable adjustments applied in a fixed order: coupon discount, delivery
// charge, cash-on-delivery surcharge.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

// Config holds the pricing knobs. Amounts are rupees.
type Config struct {
	FreeDeliveryThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
	CODSurcharge          decimal.Decimal
	Currency              string
}

// DefaultConfig returns the storefront defaults: free delivery at ₹500,
// ₹50 delivery fee below that, ₹50 COD surcharge.
func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		DeliveryFee:           decimal.NewFromInt(50),
		CODSurcharge:          decimal.NewFromInt(50),
		Currency:              "INR",
	}
}

// Quote is the fully derived total breakdown for one cart state. Building a
// quote has no side effects; the same inputs always produce the same quote.
type Quote struct {
	Subtotal            decimal.Decimal `json:"subtotal"`
	CouponCode          string          `json:"coupon_code,omitempty"`
	CouponDiscount      decimal.Decimal `json:"coupon_discount"`
	SubtotalAfterCoupon decimal.Decimal `json:"subtotal_after_coupon"`
	DeliveryCharge      decimal.Decimal `json:"delivery_charge"`
	CODSurcharge        decimal.Decimal `json:"cod_surcharge"`
	FinalTotal          decimal.Decimal `json:"final_total"`
	Currency            string          `json:"currency"`
}

// AmountMinor returns the final total in minor currency units (paise),
// as the payment gateway expects.
func (q Quote) AmountMinor() int64 {
	return q.FinalTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// BuildQuote derives the final payable amount for the cart:
//
//	subtotal            = sum(line.price * line.quantity)
//	subtotalAfterCoupon = subtotal - couponDiscount   (floored at 0)
//	deliveryCharge      = 0 if subtotal >= threshold, else fee
//	codSurcharge        = fee if COD, else 0
//	finalTotal          = subtotalAfterCoupon + deliveryCharge + codSurcharge
//
// The applied coupon is revalidated against the current subtotal; a code that
// no longer qualifies contributes no discount. Fees are additive after the
// discount and never discounted themselves, so FinalTotal >= 0 always holds.
func (c Config) BuildQuote(cart *domain.Cart, method domain.PaymentMethod) Quote {
	q := Quote{
		Subtotal:       cart.Subtotal(),
		CouponDiscount: decimal.Zero,
		DeliveryCharge: decimal.Zero,
		CODSurcharge:   decimal.Zero,
		Currency:       c.Currency,
	}

	if cart.CouponCode != "" {
		if res := ValidateCoupon(cart.CouponCode, q.Subtotal); res.Valid {
			q.CouponCode = cart.CouponCode
			q.CouponDiscount = res.Discount
		}
	}

	q.SubtotalAfterCoupon = q.Subtotal.Sub(q.CouponDiscount)
	if q.SubtotalAfterCoupon.IsNegative() {
		q.SubtotalAfterCoupon = decimal.Zero
	}

	if q.Subtotal.LessThan(c.FreeDeliveryThreshold) {
		q.DeliveryCharge = c.DeliveryFee
	}
	if method == domain.PaymentMethodCOD {
		q.CODSurcharge = c.CODSurcharge
	}

	q.FinalTotal = q.SubtotalAfterCoupon.Add(q.DeliveryCharge).Add(q.CODSurcharge)
	return q
}
