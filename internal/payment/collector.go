// Package payment wraps the external payment-capture widget behind a single
// awaitable call. The widget yields exactly one of three callbacks (success,
// failure, dismissal); Collect turns that into a structured Result the
// checkout flow can branch on.
package payment

import "context"

// Outcome is the terminal result of one payment attempt.
type Outcome string

const (
	// OutcomeCaptured - gateway confirmed the payment and returned a token
	OutcomeCaptured Outcome = "captured"
	// OutcomeFailed - gateway rejected the payment
	OutcomeFailed Outcome = "failed"
	// OutcomeDismissed - customer closed the widget without completing
	OutcomeDismissed Outcome = "dismissed"
)

// Result carries the widget outcome. PaymentID is set only for captured
// payments; Reason only for failures.
type Result struct {
	Outcome   Outcome
	PaymentID string
	Reason    string
}

// CollectRequest describes one payment attempt handed to the widget.
// Amount is in minor currency units (paise).
type CollectRequest struct {
	OrderID     int64
	AmountMinor int64
	Currency    string
	Name        string
	Email       string
	Phone       string
}

// Collector runs one payment attempt to completion. The call blocks until
// the widget reports an outcome or ctx expires; the wait is bounded only by
// customer interaction, so callers set the deadline.
type Collector interface {
	Collect(ctx context.Context, req CollectRequest) (Result, error)
}
