package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/cart"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

const testSession = "session-1"

type fixture struct {
	orchestrator *Orchestrator
	carts        *cart.Service
	gateway      *mockGateway
	ledger       *memoryLedger
}

func newFixture(t *testing.T, collector payment.Collector) *fixture {
	t.Helper()
	gateway := newMockGateway()
	ledger := newMemoryLedger()
	carts := cart.NewService(cart.NewMemoryRepository(), zap.NewNop())
	orch := NewOrchestrator(
		carts, gateway, collector, ledger.repositories(),
		pricing.DefaultConfig(), 2*time.Second, zap.NewNop(),
	)
	return &fixture{orchestrator: orch, carts: carts, gateway: gateway, ledger: ledger}
}

func (f *fixture) seedCart(t *testing.T, price string, coupon string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.AddItem(ctx, testSession, domain.CartLine{
		ProductID: 5,
		Name:      "Test Product",
		Price:     decimal.RequireFromString(price),
		Quantity:  1,
	})
	require.NoError(t, err)
	if coupon != "" {
		_, _, err := f.carts.ApplyCoupon(ctx, testSession, coupon)
		require.NoError(t, err)
	}
}

func (f *fixture) cartItems(t *testing.T) int {
	t.Helper()
	c, err := f.carts.Get(context.Background(), testSession)
	require.NoError(t, err)
	return len(c.Items)
}

func codRequest() SubmitRequest {
	return SubmitRequest{Form: validForm(), PaymentMethod: domain.PaymentMethodCOD}
}

func onlineRequest() SubmitRequest {
	return SubmitRequest{Form: validForm(), PaymentMethod: domain.PaymentMethodOnline}
}

func TestSubmitCODConfirmsAndClearsCart(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.seedCart(t, "600", "")

	conf, err := f.orchestrator.Submit(context.Background(), testSession, codRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1001), conf.OrderID)
	assert.Equal(t, "650", conf.Quote.FinalTotal.String())
	assert.False(t, conf.PaymentCaptured)
	assert.False(t, conf.StatusSyncPending)

	updates := f.gateway.statusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OrderStatusProcessing, updates[0].status)

	assert.Equal(t, 0, f.cartItems(t))
	assert.Contains(t, f.ledger.eventTypes(), "order_created")
	assert.Contains(t, f.ledger.eventTypes(), "status_change")
}

func TestSubmitCODStatusSyncFailureStillConfirms(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.gateway.updateErr = errors.New("upstream down")
	f.seedCart(t, "600", "")

	conf, err := f.orchestrator.Submit(context.Background(), testSession, codRequest())

	require.NoError(t, err)
	assert.True(t, conf.StatusSyncPending)
	assert.Equal(t, 0, f.cartItems(t), "finalized order clears the cart even when status sync fails")
	assert.Contains(t, f.ledger.eventTypes(), "status_sync_failed")
}

func TestSubmitOnlineCapturedPayment(t *testing.T) {
	f := newFixture(t, &fakeCollector{
		result: payment.Result{Outcome: payment.OutcomeCaptured, PaymentID: "pay_abc"},
	})
	f.seedCart(t, "1200", "FIRST30")

	conf, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())

	require.NoError(t, err)
	assert.True(t, conf.PaymentCaptured)
	assert.Equal(t, "pay_abc", conf.PaymentID)
	assert.Equal(t, "840", conf.Quote.FinalTotal.String())
	assert.False(t, conf.StatusSyncPending)

	updates := f.gateway.statusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OrderStatusProcessing, updates[0].status)
	assert.Equal(t, "pay_abc", updates[0].meta["razorpay_payment_id"])

	assert.Equal(t, 0, f.cartItems(t))
}

func TestSubmitOnlineCapturedButSyncFailed(t *testing.T) {
	f := newFixture(t, &fakeCollector{
		result: payment.Result{Outcome: payment.OutcomeCaptured, PaymentID: "pay_abc"},
	})
	f.gateway.updateErr = errors.New("upstream down")
	f.seedCart(t, "600", "")

	conf, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())

	// Money was taken: the customer sees success, never an error.
	require.NoError(t, err)
	assert.True(t, conf.PaymentCaptured)
	assert.True(t, conf.StatusSyncPending)
	assert.Equal(t, 0, f.cartItems(t))
	assert.Contains(t, f.ledger.eventTypes(), "status_sync_failed")
}

func TestSubmitOnlinePaymentFailedPreservesCart(t *testing.T) {
	f := newFixture(t, &fakeCollector{
		result: payment.Result{Outcome: payment.OutcomeFailed, Reason: "card declined"},
	})
	f.seedCart(t, "600", "")

	_, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())

	var pf *ErrPaymentFailed
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "card declined", pf.Reason)

	updates := f.gateway.statusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OrderStatusFailed, updates[0].status)

	assert.Equal(t, 1, f.cartItems(t), "cart survives a failed payment for retry")
}

func TestSubmitOnlineDismissedPreservesCart(t *testing.T) {
	f := newFixture(t, &fakeCollector{
		result: payment.Result{Outcome: payment.OutcomeDismissed},
	})
	f.seedCart(t, "600", "")

	_, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())

	require.ErrorIs(t, err, ErrPaymentDismissed)

	updates := f.gateway.statusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OrderStatusCancelled, updates[0].status)

	assert.Equal(t, 1, f.cartItems(t))
}

func TestSubmitOnlineCollectorErrorCancelsOrder(t *testing.T) {
	f := newFixture(t, &fakeCollector{err: context.DeadlineExceeded})
	f.seedCart(t, "600", "")

	_, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	updates := f.gateway.statusUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OrderStatusCancelled, updates[0].status)

	assert.Equal(t, 1, f.cartItems(t))
}

func TestSubmitOrderCreationFailureLeavesNothingBehind(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.gateway.createErr = &apperrors.ErrUpstream{Service: "WooCommerce", Err: errors.New("503")}
	f.seedCart(t, "600", "")

	_, err := f.orchestrator.Submit(context.Background(), testSession, codRequest())

	var upstream *apperrors.ErrUpstream
	require.ErrorAs(t, err, &upstream)
	assert.Empty(t, f.gateway.statusUpdates())
	assert.Equal(t, 1, f.cartItems(t))
	assert.Empty(t, f.ledger.eventTypes())
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture(t, &fakeCollector{})

	_, err := f.orchestrator.Submit(context.Background(), testSession, codRequest())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestSubmitInvalidPaymentMethod(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.seedCart(t, "600", "")

	req := SubmitRequest{Form: validForm(), PaymentMethod: "card"}
	_, err := f.orchestrator.Submit(context.Background(), testSession, req)

	var validation *apperrors.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "payment_method")
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestSubmitInvalidForm(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.seedCart(t, "600", "")

	req := codRequest()
	req.Form.Phone = "123"
	_, err := f.orchestrator.Submit(context.Background(), testSession, req)

	var validation *apperrors.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "phone")
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	collector := newBlockingCollector()
	f := newFixture(t, collector)
	f.seedCart(t, "600", "")

	done := make(chan struct{})
	var firstErr error
	go func() {
		defer close(done)
		_, firstErr = f.orchestrator.Submit(context.Background(), testSession, onlineRequest())
	}()
	<-collector.entered

	_, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	collector.release <- payment.Result{Outcome: payment.OutcomeCaptured, PaymentID: "pay_abc"}
	<-done
	require.NoError(t, firstErr)

	// Guard is released after the first submission completes.
	f.seedCart(t, "600", "")
	_, err = f.orchestrator.Submit(context.Background(), testSession, codRequest())
	require.NoError(t, err)
}

func TestSubmitBuildsDraftFromCartAndQuote(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.seedCart(t, "1200", "FIRST30")

	_, err := f.orchestrator.Submit(context.Background(), testSession, codRequest())
	require.NoError(t, err)

	draft := f.gateway.createdDraft
	require.NotNil(t, draft)

	require.Len(t, draft.Lines, 1)
	assert.Equal(t, int64(5), draft.Lines[0].ProductID)
	assert.Equal(t, 1, draft.Lines[0].Quantity)

	// Free delivery above threshold: only the COD surcharge fee line.
	require.Len(t, draft.FeeLines, 1)
	assert.Equal(t, "COD Charges", draft.FeeLines[0].Name)
	assert.Equal(t, "50", draft.FeeLines[0].Amount.String())

	require.Len(t, draft.CouponLines, 1)
	assert.Equal(t, "FIRST30", draft.CouponLines[0].Code)
	assert.Equal(t, "360", draft.CouponLines[0].Discount.String())

	assert.Equal(t, validForm().WhatsApp, draft.Metadata["whatsapp_number"])
}

func TestSubmitAddsDeliveryFeeLineBelowThreshold(t *testing.T) {
	f := newFixture(t, &fakeCollector{
		result: payment.Result{Outcome: payment.OutcomeCaptured, PaymentID: "pay_abc"},
	})
	f.seedCart(t, "300", "")

	conf, err := f.orchestrator.Submit(context.Background(), testSession, onlineRequest())
	require.NoError(t, err)
	assert.Equal(t, "350", conf.Quote.FinalTotal.String())

	draft := f.gateway.createdDraft
	require.NotNil(t, draft)
	require.Len(t, draft.FeeLines, 1)
	assert.Equal(t, "Delivery Charge", draft.FeeLines[0].Name)
}

func TestQuoteDoesNotSubmit(t *testing.T) {
	f := newFixture(t, &fakeCollector{})
	f.seedCart(t, "600", "")

	quote, err := f.orchestrator.Quote(context.Background(), testSession, domain.PaymentMethodCOD)

	require.NoError(t, err)
	assert.Equal(t, "650", quote.FinalTotal.String())
	assert.Equal(t, 0, f.gateway.createCalls)
	assert.Equal(t, 1, f.cartItems(t))
}
