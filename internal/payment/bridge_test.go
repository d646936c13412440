package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBridgeDeliversOutcome(t *testing.T) {
	bridge := NewBridge(zap.NewNop())

	done := make(chan struct{})
	var res Result
	var err error
	go func() {
		defer close(done)
		res, err = bridge.Collect(context.Background(), CollectRequest{OrderID: 42, AmountMinor: 65000, Currency: "INR"})
	}()

	// Wait for the collect to register before resolving.
	require.Eventually(t, func() bool {
		return bridge.Resolve(42, Result{Outcome: OutcomeCaptured, PaymentID: "pay_123"}) == nil
	}, time.Second, 5*time.Millisecond)

	<-done
	require.NoError(t, err)
	assert.Equal(t, OutcomeCaptured, res.Outcome)
	assert.Equal(t, "pay_123", res.PaymentID)
}

func TestBridgeResolveWithoutPendingCollection(t *testing.T) {
	bridge := NewBridge(zap.NewNop())

	err := bridge.Resolve(99, Result{Outcome: OutcomeCaptured})
	assert.Error(t, err)
}

func TestBridgeResolveOnlyOnce(t *testing.T) {
	bridge := NewBridge(zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		bridge.Collect(context.Background(), CollectRequest{OrderID: 7})
	}()

	require.Eventually(t, func() bool {
		return bridge.Resolve(7, Result{Outcome: OutcomeDismissed}) == nil
	}, time.Second, 5*time.Millisecond)
	<-done

	// Second resolve for the same order has nothing to deliver to.
	assert.Error(t, bridge.Resolve(7, Result{Outcome: OutcomeCaptured}))
}

func TestBridgeCollectHonorsContext(t *testing.T) {
	bridge := NewBridge(zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := bridge.Collect(ctx, CollectRequest{OrderID: 11})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The expired collection is unregistered; a late callback errors.
	assert.Error(t, bridge.Resolve(11, Result{Outcome: OutcomeCaptured}))
}

func TestBridgeRejectsDuplicateCollect(t *testing.T) {
	bridge := NewBridge(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go bridge.Collect(ctx, CollectRequest{OrderID: 5})

	// Probe with a pre-cancelled context so an unregistered order id returns
	// the context error instead of blocking.
	probeCtx, probeCancel := context.WithCancel(context.Background())
	probeCancel()
	require.Eventually(t, func() bool {
		_, err := bridge.Collect(probeCtx, CollectRequest{OrderID: 5})
		return err != nil && strings.Contains(err.Error(), "already pending")
	}, time.Second, 5*time.Millisecond)
}
