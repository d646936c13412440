package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutForm carries the delivery details entered by the customer.
// Validation is synchronous and field-local; see checkout.ValidateForm.
type CheckoutForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	City     string `json:"city"`
	State    string `json:"state"`
	Notes    string `json:"notes,omitempty"`
}

// OrderDraft is everything the commerce platform needs to create an order.
// Line items carry only ids and quantities; unit prices are recomputed
// upstream and never trusted from this client.
type OrderDraft struct {
	Lines         []DraftLine
	Form          CheckoutForm
	PaymentMethod PaymentMethod
	FeeLines      []FeeLine
	CouponLines   []CouponLine
	Metadata      map[string]string
}

// DraftLine identifies a product or variant and how many of it.
type DraftLine struct {
	ProductID   int64
	VariationID *int64
	Quantity    int
}

// FeeLine is an extra charge attached to the order (delivery, COD surcharge).
type FeeLine struct {
	Name   string
	Amount decimal.Decimal
}

// CouponLine records an applied discount code and the amount it took off.
type CouponLine struct {
	Code     string
	Discount decimal.Decimal
}

// PendingOrder references an order created on the commerce platform. The
// platform owns it; we hold the id and track the status we last set.
type PendingOrder struct {
	ID     int64
	Status OrderStatus
	Total  decimal.Decimal
}

// OrderRecord is the local ledger copy of an order, kept for audit and
// manual reconciliation. The upstream order is always the authority.
type OrderRecord struct {
	ID            uuid.UUID
	RemoteOrderID int64
	SessionID     string
	Status        OrderStatus
	PaymentMethod PaymentMethod
	Total         decimal.Decimal
	PaymentID     *string
	CustomerName  string
	CustomerPhone string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderEvent is an append-only audit event for an order record.
type OrderEvent struct {
	ID            uuid.UUID
	RemoteOrderID int64
	EventType     string
	EventData     map[string]interface{} // JSONB
	CreatedAt     time.Time
}
