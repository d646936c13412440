package checkout

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a submission is already processing
// for the same session. At most one submission runs per checkout session.
var ErrSubmissionInFlight = errors.New("checkout submission already in flight")

// ErrEmptyCart is returned when submitting a checkout with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrPaymentDismissed is returned when the customer closed the payment
// widget without completing. The order was moved to cancelled; the cart is
// preserved for retry.
var ErrPaymentDismissed = errors.New("payment dismissed by customer")

// ErrPaymentFailed is returned when the gateway rejected the payment. The
// order was moved to failed; the cart is preserved for retry.
type ErrPaymentFailed struct {
	Reason string
}

func (e *ErrPaymentFailed) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("payment failed: %s", e.Reason)
	}
	return "payment failed"
}
