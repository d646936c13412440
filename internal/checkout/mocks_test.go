package checkout

import (
	"context"
	"sync"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/repository"
)

// mockGateway records every call and answers from canned responses.
type mockGateway struct {
	mu sync.Mutex

	createErr    error
	updateErr    error
	nextOrderID  int64
	createdDraft *domain.OrderDraft
	createCalls  int
	updates      []statusUpdate
}

type statusUpdate struct {
	orderID int64
	status  domain.OrderStatus
	meta    map[string]string
}

func newMockGateway() *mockGateway {
	return &mockGateway{nextOrderID: 1001}
}

func (g *mockGateway) CreateOrder(_ context.Context, draft domain.OrderDraft) (*domain.PendingOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdDraft = &draft
	return &domain.PendingOrder{ID: g.nextOrderID, Status: domain.OrderStatusPending}, nil
}

func (g *mockGateway) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus, meta map[string]string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.updateErr != nil {
		return g.updateErr
	}
	g.updates = append(g.updates, statusUpdate{orderID: orderID, status: status, meta: meta})
	return nil
}

func (g *mockGateway) statusUpdates() []statusUpdate {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]statusUpdate(nil), g.updates...)
}

// fakeCollector returns a canned result without touching any widget.
type fakeCollector struct {
	result payment.Result
	err    error
}

func (c *fakeCollector) Collect(_ context.Context, _ payment.CollectRequest) (payment.Result, error) {
	if c.err != nil {
		return payment.Result{}, c.err
	}
	return c.result, nil
}

// blockingCollector parks until released, for exercising the in-flight guard.
type blockingCollector struct {
	entered chan struct{}
	release chan payment.Result
}

func newBlockingCollector() *blockingCollector {
	return &blockingCollector{
		entered: make(chan struct{}),
		release: make(chan payment.Result),
	}
}

func (c *blockingCollector) Collect(ctx context.Context, _ payment.CollectRequest) (payment.Result, error) {
	close(c.entered)
	select {
	case res := <-c.release:
		return res, nil
	case <-ctx.Done():
		return payment.Result{}, ctx.Err()
	}
}

// memoryLedger is an in-process stand-in for the Postgres order ledger.
type memoryLedger struct {
	records *memoryOrderRecords
	events  *memoryOrderEvents
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		records: &memoryOrderRecords{},
		events:  &memoryOrderEvents{},
	}
}

func (l *memoryLedger) repositories() *repository.Repositories {
	return &repository.Repositories{OrderRecord: l.records, OrderEvent: l.events}
}

func (l *memoryLedger) eventTypes() []string {
	l.events.mu.Lock()
	defer l.events.mu.Unlock()
	types := make([]string, 0, len(l.events.events))
	for _, e := range l.events.events {
		types = append(types, e.EventType)
	}
	return types
}

type memoryOrderRecords struct {
	mu      sync.Mutex
	records []*domain.OrderRecord
	updates []ledgerStatusUpdate
}

type ledgerStatusUpdate struct {
	orderID   int64
	status    domain.OrderStatus
	paymentID *string
}

func (r *memoryOrderRecords) Create(_ context.Context, record *domain.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memoryOrderRecords) GetByRemoteOrderID(_ context.Context, remoteOrderID int64) (*domain.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.RemoteOrderID == remoteOrderID {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memoryOrderRecords) UpdateStatus(_ context.Context, remoteOrderID int64, status domain.OrderStatus, paymentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, ledgerStatusUpdate{orderID: remoteOrderID, status: status, paymentID: paymentID})
	return nil
}

func (r *memoryOrderRecords) ListByStatus(_ context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.OrderRecord
	for _, rec := range r.records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memoryOrderEvents struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
}

func (e *memoryOrderEvents) Create(_ context.Context, event *domain.OrderEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *memoryOrderEvents) GetByRemoteOrderID(_ context.Context, remoteOrderID int64) ([]*domain.OrderEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*domain.OrderEvent
	for _, ev := range e.events {
		if ev.RemoteOrderID == remoteOrderID {
			out = append(out, ev)
		}
	}
	return out, nil
}
