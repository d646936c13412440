package domain

// OrderStatus represents the status of an order on the commerce platform
// (WooCommerce-aligned). A fresh order is PENDING; every transition out of
// PENDING is terminal for this storefront.
type OrderStatus string

const (
	// PENDING - order created, COD unconfirmed or awaiting payment
	OrderStatusPending OrderStatus = "pending"
	// PROCESSING - COD confirmed or payment captured
	OrderStatusProcessing OrderStatus = "processing"
	// CANCELLED - customer dismissed the payment widget
	OrderStatusCancelled OrderStatus = "cancelled"
	// FAILED - payment rejected by the gateway
	OrderStatusFailed OrderStatus = "failed"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCancelled,
		OrderStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid.
// Transitions are one-way: once an order leaves PENDING it never returns.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled ||
			newStatus == OrderStatusFailed
	case OrderStatusProcessing, OrderStatusCancelled, OrderStatusFailed:
		return false // Terminal states
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusCancelled, OrderStatusFailed:
		return true
	default:
		return false
	}
}

// PaymentMethod selects how the customer pays for an order.
type PaymentMethod string

const (
	// PaymentMethodCOD - cash on delivery, confirmed immediately
	PaymentMethodCOD PaymentMethod = "cod"
	// PaymentMethodOnline - captured through the payment gateway widget
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid checks if the payment method is one we accept
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}
