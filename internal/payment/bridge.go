package payment

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Bridge implements Collector by parking each Collect call on a channel
// until the widget's HTTP callback resolves it. Exactly one result is
// delivered per order id; late or duplicate resolves are rejected.
type Bridge struct {
	mu      sync.Mutex
	pending map[int64]chan Result
	logger  *zap.Logger
}

func NewBridge(logger *zap.Logger) *Bridge {
	return &Bridge{
		pending: make(map[int64]chan Result),
		logger:  logger,
	}
}

// Collect registers the attempt and blocks until Resolve delivers the
// outcome or ctx expires.
func (b *Bridge) Collect(ctx context.Context, req CollectRequest) (Result, error) {
	ch := make(chan Result, 1)

	b.mu.Lock()
	if _, exists := b.pending[req.OrderID]; exists {
		b.mu.Unlock()
		return Result{}, fmt.Errorf("payment collection already pending for order %d", req.OrderID)
	}
	b.pending[req.OrderID] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, req.OrderID)
		b.mu.Unlock()
	}()

	b.logger.Info("Awaiting payment widget outcome",
		zap.Int64("order_id", req.OrderID),
		zap.Int64("amount_minor", req.AmountMinor),
		zap.String("currency", req.Currency),
	)

	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Resolve delivers the widget outcome for an order. Returns an error when no
// collection is pending (already resolved, timed out, or never started).
func (b *Bridge) Resolve(orderID int64, res Result) error {
	b.mu.Lock()
	ch, ok := b.pending[orderID]
	if ok {
		delete(b.pending, orderID)
	}
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("no pending payment collection for order %d", orderID)
	}

	ch <- res
	return nil
}
