package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLine is one row of the cart. Name, price and images are denormalized
// copies taken at add time and are never re-fetched.
type CartLine struct {
	ProductID    int64             `json:"product_id"`
	VariationID  *int64            `json:"variation_id,omitempty"`
	Name         string            `json:"name"`
	Price        decimal.Decimal   `json:"price"`
	RegularPrice *decimal.Decimal  `json:"regular_price,omitempty"`
	Quantity     int               `json:"quantity"`
	Images       []string          `json:"images,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// Key computes the line identity: the variation id when the line is a
// variant, otherwise the product id. Two lines with the same product id but
// different variations are distinct and never merged.
func (l CartLine) Key() string {
	if l.VariationID != nil {
		return strconv.FormatInt(*l.VariationID, 10)
	}
	return strconv.FormatInt(l.ProductID, 10)
}

// LineTotal returns price * quantity for this line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the per-session cart state. All mutations are synchronous, pure
// data transitions; persistence is the caller's concern.
type Cart struct {
	Items      []CartLine `json:"items"`
	CouponCode string     `json:"coupon_code,omitempty"`
}

// Add merges a line into the cart by identity key. An existing line's
// quantity grows by the added quantity (default 1); a new line is appended,
// preserving insertion order.
func (c *Cart) Add(line CartLine) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	key := line.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += line.Quantity
			return
		}
	}
	c.Items = append(c.Items, line)
}

// Increment raises the quantity of the line matching key by one.
// Unknown keys are a no-op.
func (c *Cart) Increment(key string) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the line matching key by one, but never
// below 1. Removal is a distinct explicit action. Unknown keys are a no-op.
func (c *Cart) Decrement(key string) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			if c.Items[i].Quantity > 1 {
				c.Items[i].Quantity--
			}
			return
		}
	}
}

// Remove deletes the line matching key regardless of quantity.
func (c *Cart) Remove(key string) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and drops any applied coupon. Used only after an
// order is finalized.
func (c *Cart) Clear() {
	c.Items = nil
	c.CouponCode = ""
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Items {
		count += l.Quantity
	}
	return count
}

// Subtotal returns sum(price * quantity) over all lines, recomputed on every
// call.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(l.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
