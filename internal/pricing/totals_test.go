package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

func cartWith(price string, qty int, coupon string) *domain.Cart {
	c := &domain.Cart{CouponCode: coupon}
	c.Add(domain.CartLine{
		ProductID: 1,
		Name:      "Test Product",
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	})
	return c
}

func TestBuildQuoteCODAddsSurcharge(t *testing.T) {
	// Subtotal 600, no coupon, COD: 600 + 0 delivery (>= 500) + 50 COD = 650.
	q := DefaultConfig().BuildQuote(cartWith("600", 1, ""), domain.PaymentMethodCOD)

	assert.Equal(t, "600", q.Subtotal.String())
	assert.True(t, q.CouponDiscount.IsZero())
	assert.True(t, q.DeliveryCharge.IsZero())
	assert.Equal(t, "50", q.CODSurcharge.String())
	assert.Equal(t, "650", q.FinalTotal.String())
}

func TestBuildQuoteOnlineBelowThresholdAddsDelivery(t *testing.T) {
	q := DefaultConfig().BuildQuote(cartWith("300", 1, ""), domain.PaymentMethodOnline)

	assert.Equal(t, "50", q.DeliveryCharge.String())
	assert.True(t, q.CODSurcharge.IsZero())
	assert.Equal(t, "350", q.FinalTotal.String())
}

func TestBuildQuoteFreeDeliveryAtThreshold(t *testing.T) {
	q := DefaultConfig().BuildQuote(cartWith("500", 1, ""), domain.PaymentMethodOnline)

	assert.True(t, q.DeliveryCharge.IsZero())
	assert.Equal(t, "500", q.FinalTotal.String())
}

func TestBuildQuoteAppliesCoupon(t *testing.T) {
	// Subtotal 1200 with FIRST30: 1200 - 360 = 840, free delivery, no surcharge.
	q := DefaultConfig().BuildQuote(cartWith("1200", 1, "FIRST30"), domain.PaymentMethodOnline)

	assert.Equal(t, "FIRST30", q.CouponCode)
	assert.Equal(t, "360", q.CouponDiscount.String())
	assert.Equal(t, "840", q.SubtotalAfterCoupon.String())
	assert.Equal(t, "840", q.FinalTotal.String())
}

func TestBuildQuoteDropsCouponThatNoLongerQualifies(t *testing.T) {
	// Coupon stays on the cart but the subtotal fell below its minimum:
	// it contributes no discount and does not appear in the quote.
	q := DefaultConfig().BuildQuote(cartWith("400", 1, "WELCOME100"), domain.PaymentMethodOnline)

	assert.Empty(t, q.CouponCode)
	assert.True(t, q.CouponDiscount.IsZero())
	assert.Equal(t, "450", q.FinalTotal.String())
}

func TestBuildQuoteDeliveryUsesRawSubtotal(t *testing.T) {
	// Coupon brings 1200 down to 840 but delivery eligibility is decided on
	// the pre-discount subtotal, which is above the threshold.
	q := DefaultConfig().BuildQuote(cartWith("1200", 1, "FIRST30"), domain.PaymentMethodCOD)

	assert.True(t, q.DeliveryCharge.IsZero())
	assert.Equal(t, "890", q.FinalTotal.String())
}

func TestBuildQuoteNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	for _, price := range []string{"0", "500", "501", "1000", "1000.50"} {
		for _, coupon := range []string{"", "FIRST30", "WELCOME100"} {
			for _, method := range []domain.PaymentMethod{domain.PaymentMethodCOD, domain.PaymentMethodOnline} {
				q := cfg.BuildQuote(cartWith(price, 1, coupon), method)
				assert.False(t, q.FinalTotal.IsNegative(),
					"price=%s coupon=%s method=%s", price, coupon, method)
			}
		}
	}
}

func TestBuildQuoteIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	c := cartWith("1200", 1, "FIRST30")

	first := cfg.BuildQuote(c, domain.PaymentMethodCOD)
	second := cfg.BuildQuote(c, domain.PaymentMethodCOD)

	assert.True(t, first.FinalTotal.Equal(second.FinalTotal))
	assert.True(t, first.CouponDiscount.Equal(second.CouponDiscount))
}

func TestQuoteAmountMinor(t *testing.T) {
	q := DefaultConfig().BuildQuote(cartWith("650.50", 1, ""), domain.PaymentMethodOnline)

	assert.Equal(t, "650.5", q.FinalTotal.String())
	assert.Equal(t, int64(65050), q.AmountMinor())
}
