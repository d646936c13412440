package repository

import (
	"context"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

// OrderRecordRepository defines local order ledger data access methods.
// The ledger mirrors upstream orders for audit; the platform stays the
// authority.
type OrderRecordRepository interface {
	Create(ctx context.Context, record *domain.OrderRecord) error
	GetByRemoteOrderID(ctx context.Context, remoteOrderID int64) (*domain.OrderRecord, error)
	UpdateStatus(ctx context.Context, remoteOrderID int64, status domain.OrderStatus, paymentID *string) error
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.OrderRecord, error)
}

// OrderEventRepository defines order audit event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByRemoteOrderID(ctx context.Context, remoteOrderID int64) ([]*domain.OrderEvent, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	OrderRecord OrderRecordRepository
	OrderEvent  OrderEventRepository
}
