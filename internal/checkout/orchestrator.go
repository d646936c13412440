// Package checkout orchestrates order submission: form validation, total
// computation, external order creation, payment capture and the final order
// status reconciliation. Each submission creates a fresh upstream order;
// pending orders are never reused across payment attempts.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/cart"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/repository"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

// OrderGateway is the commerce platform boundary the orchestrator drives:
// order creation plus the status transitions that reconcile payment outcomes.
type OrderGateway interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.PendingOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, meta map[string]string) error
}

// SubmitRequest is one checkout submission.
type SubmitRequest struct {
	Form          domain.CheckoutForm
	PaymentMethod domain.PaymentMethod
}

// Confirmation is returned when an order reaches a state the customer should
// treat as success. StatusSyncPending marks the accepted gap where payment
// was captured (or COD accepted) but the upstream status write failed; the
// customer is still told the order is confirmed.
type Confirmation struct {
	OrderID           int64
	Quote             pricing.Quote
	PaymentID         string
	PaymentCaptured   bool
	StatusSyncPending bool
}

type Orchestrator struct {
	carts       *cart.Service
	gateway     OrderGateway
	payments    payment.Collector
	ledger      *repository.Repositories
	pricing     pricing.Config
	paymentWait time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewOrchestrator creates a new checkout orchestrator
func NewOrchestrator(
	carts *cart.Service,
	gateway OrderGateway,
	payments payment.Collector,
	ledger *repository.Repositories,
	pricingCfg pricing.Config,
	paymentWait time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	if paymentWait <= 0 {
		paymentWait = 10 * time.Minute
	}
	return &Orchestrator{
		carts:       carts,
		gateway:     gateway,
		payments:    payments,
		ledger:      ledger,
		pricing:     pricingCfg,
		paymentWait: paymentWait,
		logger:      logger,
	}
}

// Quote returns the current total breakdown for the session's cart without
// submitting anything.
func (o *Orchestrator) Quote(ctx context.Context, sessionID string, method domain.PaymentMethod) (pricing.Quote, error) {
	c, err := o.carts.Get(ctx, sessionID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return o.pricing.BuildQuote(c, method), nil
}

// Submit runs one checkout submission end to end.
//
// Failure semantics: a creation failure leaves nothing behind upstream; a
// payment failure or dismissal moves the created order to its terminal
// status and preserves the cart; only a finalized order (COD confirmation or
// captured payment) clears the cart. A status-sync failure after captured
// payment is reported as success with StatusSyncPending set.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*Confirmation, error) {
	if !req.PaymentMethod.IsValid() {
		return nil, &apperrors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{"payment_method": "Payment method must be cod or online"},
		}
	}
	if fields := ValidateForm(req.Form); len(fields) > 0 {
		return nil, &apperrors.ErrValidation{Message: "validation failed", Fields: fields}
	}

	if !o.acquire(sessionID) {
		return nil, ErrSubmissionInFlight
	}
	defer o.release(sessionID)

	snapshot, err := o.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	quote := o.pricing.BuildQuote(snapshot, req.PaymentMethod)

	order, err := o.gateway.CreateOrder(ctx, buildDraft(snapshot, quote, req))
	if err != nil {
		// Nothing was created upstream; the cart stays intact.
		return nil, fmt.Errorf("order creation: %w", err)
	}
	order.Status = domain.OrderStatusPending

	o.recordOrder(ctx, sessionID, order, quote, req)

	if req.PaymentMethod == domain.PaymentMethodCOD {
		return o.finalizeCOD(ctx, sessionID, order, quote)
	}
	return o.collectPayment(ctx, sessionID, order, quote, req.Form)
}

// finalizeCOD confirms a cash-on-delivery order immediately. A failed status
// write leaves the order pending upstream; the customer still gets a generic
// completion and the gap is ledgered for manual follow-up.
func (o *Orchestrator) finalizeCOD(ctx context.Context, sessionID string, order *domain.PendingOrder, quote pricing.Quote) (*Confirmation, error) {
	conf := &Confirmation{OrderID: order.ID, Quote: quote}

	if err := o.transition(ctx, order, domain.OrderStatusProcessing, nil); err != nil {
		o.logger.Warn("COD confirmation status update failed",
			zap.Int64("order_id", order.ID), zap.Error(err))
		o.recordEvent(ctx, order.ID, "status_sync_failed", map[string]interface{}{
			"target": domain.OrderStatusProcessing,
			"error":  err.Error(),
		})
		conf.StatusSyncPending = true
	}

	o.clearCart(ctx, sessionID, order.ID)
	return conf, nil
}

// collectPayment hands off to the payment widget and reconciles the order
// status from its outcome. The three outcomes are mutually exclusive
// terminal branches of the single pending order.
func (o *Orchestrator) collectPayment(ctx context.Context, sessionID string, order *domain.PendingOrder, quote pricing.Quote, form domain.CheckoutForm) (*Confirmation, error) {
	collectCtx, cancel := context.WithTimeout(ctx, o.paymentWait)
	defer cancel()

	res, err := o.payments.Collect(collectCtx, payment.CollectRequest{
		OrderID:     order.ID,
		AmountMinor: quote.AmountMinor(),
		Currency:    quote.Currency,
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
	})
	if err != nil {
		// Widget never reported an outcome (timeout, shutdown). Best-effort
		// cancel so the order does not linger ambiguously; the cleanup's own
		// failure is only logged since the primary error is surfaced.
		o.cancelBestEffort(ctx, order)
		return nil, fmt.Errorf("payment collection: %w", err)
	}

	switch res.Outcome {
	case payment.OutcomeCaptured:
		conf := &Confirmation{
			OrderID:         order.ID,
			Quote:           quote,
			PaymentID:       res.PaymentID,
			PaymentCaptured: true,
		}
		meta := map[string]string{"razorpay_payment_id": res.PaymentID}
		if err := o.transition(ctx, order, domain.OrderStatusProcessing, meta); err != nil {
			// The money was taken; never show the customer a failure here.
			o.logger.Warn("Status update failed after captured payment",
				zap.Int64("order_id", order.ID),
				zap.String("payment_id", res.PaymentID),
				zap.Error(err))
			o.recordEvent(ctx, order.ID, "status_sync_failed", map[string]interface{}{
				"target":     domain.OrderStatusProcessing,
				"payment_id": res.PaymentID,
				"error":      err.Error(),
			})
			conf.StatusSyncPending = true
		}
		o.clearCart(ctx, sessionID, order.ID)
		return conf, nil

	case payment.OutcomeFailed:
		if err := o.transition(ctx, order, domain.OrderStatusFailed, nil); err != nil {
			o.logger.Warn("Failed to mark order failed",
				zap.Int64("order_id", order.ID), zap.Error(err))
		}
		return nil, &ErrPaymentFailed{Reason: res.Reason}

	case payment.OutcomeDismissed:
		if err := o.transition(ctx, order, domain.OrderStatusCancelled, nil); err != nil {
			o.logger.Warn("Failed to mark order cancelled",
				zap.Int64("order_id", order.ID), zap.Error(err))
		}
		return nil, ErrPaymentDismissed

	default:
		o.cancelBestEffort(ctx, order)
		return nil, fmt.Errorf("unknown payment outcome %q", res.Outcome)
	}
}

// transition performs exactly one upstream status move, guarded by the
// one-way state machine so a terminal order is never transitioned again.
func (o *Orchestrator) transition(ctx context.Context, order *domain.PendingOrder, to domain.OrderStatus, meta map[string]string) error {
	if !order.Status.CanTransitionTo(to) {
		return &apperrors.ErrInvalidStateTransition{From: order.Status, To: to}
	}
	if err := o.gateway.UpdateOrderStatus(ctx, order.ID, to, meta); err != nil {
		return err
	}
	from := order.Status
	order.Status = to

	var paymentID *string
	if id, ok := meta["razorpay_payment_id"]; ok {
		paymentID = &id
	}
	if err := o.ledger.OrderRecord.UpdateStatus(ctx, order.ID, to, paymentID); err != nil {
		o.logger.Warn("Ledger status update failed", zap.Int64("order_id", order.ID), zap.Error(err))
	}
	o.recordEvent(ctx, order.ID, "status_change", map[string]interface{}{
		"from": from,
		"to":   to,
	})
	return nil
}

// cancelBestEffort marks the order cancelled after an unexpected error.
// Its own failure is swallowed; the primary error is already surfacing.
func (o *Orchestrator) cancelBestEffort(ctx context.Context, order *domain.PendingOrder) {
	if order.Status.IsTerminal() {
		return
	}
	if err := o.transition(ctx, order, domain.OrderStatusCancelled, nil); err != nil {
		o.logger.Warn("Best-effort order cancel failed",
			zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

// clearCart empties the session cart after a finalized order. Never called
// on failure or cancellation paths.
func (o *Orchestrator) clearCart(ctx context.Context, sessionID string, orderID int64) {
	if err := o.carts.Clear(ctx, sessionID); err != nil {
		o.logger.Warn("Failed to clear cart after order completion",
			zap.String("session_id", sessionID),
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}
}

// recordOrder writes the ledger copy of a freshly created order.
// Best-effort: the upstream order is the authority.
func (o *Orchestrator) recordOrder(ctx context.Context, sessionID string, order *domain.PendingOrder, quote pricing.Quote, req SubmitRequest) {
	record := &domain.OrderRecord{
		RemoteOrderID: order.ID,
		SessionID:     sessionID,
		Status:        domain.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Total:         quote.FinalTotal,
		CustomerName:  req.Form.Name,
		CustomerPhone: req.Form.Phone,
	}
	if err := o.ledger.OrderRecord.Create(ctx, record); err != nil {
		o.logger.Warn("Ledger order record create failed",
			zap.Int64("order_id", order.ID), zap.Error(err))
	}
	o.recordEvent(ctx, order.ID, "order_created", map[string]interface{}{
		"payment_method": req.PaymentMethod,
		"total":          quote.FinalTotal.String(),
	})
}

func (o *Orchestrator) recordEvent(ctx context.Context, orderID int64, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		RemoteOrderID: orderID,
		EventType:     eventType,
		EventData:     data,
	}
	if err := o.ledger.OrderEvent.Create(ctx, event); err != nil {
		o.logger.Warn("Ledger event create failed",
			zap.Int64("order_id", orderID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}

// buildDraft shapes the order-creation payload. Unit prices are deliberately
// absent from the line items; the platform recomputes them.
func buildDraft(snapshot *domain.Cart, quote pricing.Quote, req SubmitRequest) domain.OrderDraft {
	draft := domain.OrderDraft{
		Form:          req.Form,
		PaymentMethod: req.PaymentMethod,
		Metadata: map[string]string{
			"whatsapp_number": req.Form.WhatsApp,
		},
	}

	for _, line := range snapshot.Items {
		draft.Lines = append(draft.Lines, domain.DraftLine{
			ProductID:   line.ProductID,
			VariationID: line.VariationID,
			Quantity:    line.Quantity,
		})
	}
	if quote.DeliveryCharge.IsPositive() {
		draft.FeeLines = append(draft.FeeLines, domain.FeeLine{
			Name:   "Delivery Charge",
			Amount: quote.DeliveryCharge,
		})
	}
	if quote.CODSurcharge.IsPositive() {
		draft.FeeLines = append(draft.FeeLines, domain.FeeLine{
			Name:   "COD Charges",
			Amount: quote.CODSurcharge,
		})
	}
	if quote.CouponCode != "" && quote.CouponDiscount.GreaterThan(decimal.Zero) {
		draft.CouponLines = append(draft.CouponLines, domain.CouponLine{
			Code:     quote.CouponCode,
			Discount: quote.CouponDiscount,
		})
	}
	return draft
}

func (o *Orchestrator) acquire(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight == nil {
		o.inFlight = make(map[string]struct{})
	}
	if _, busy := o.inFlight[sessionID]; busy {
		return false
	}
	o.inFlight[sessionID] = struct{}{}
	return true
}

func (o *Orchestrator) release(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, sessionID)
}
