package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

type orderEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderEventRepository creates a new order event repository
func NewOrderEventRepository(db *sql.DB, logger *zap.Logger) *orderEventRepository {
	return &orderEventRepository{db: db, logger: logger}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()

	eventData, err := json.Marshal(event.EventData)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO order_events (id, remote_order_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.RemoteOrderID,
		event.EventType,
		eventData,
		event.CreatedAt,
	)
	return err
}

func (r *orderEventRepository) GetByRemoteOrderID(ctx context.Context, remoteOrderID int64) ([]*domain.OrderEvent, error) {
	query := `
		SELECT id, remote_order_id, event_type, event_data, created_at
		FROM order_events
		WHERE remote_order_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, remoteOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.OrderEvent
	for rows.Next() {
		var event domain.OrderEvent
		var eventData []byte
		if err := rows.Scan(&event.ID, &event.RemoteOrderID, &event.EventType, &eventData, &event.CreatedAt); err != nil {
			return nil, err
		}
		if len(eventData) > 0 {
			if err := json.Unmarshal(eventData, &event.EventData); err != nil {
				return nil, err
			}
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
