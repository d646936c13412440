package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

type orderRecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRecordRepository creates a new order record repository
func NewOrderRecordRepository(db *sql.DB, logger *zap.Logger) *orderRecordRepository {
	return &orderRecordRepository{db: db, logger: logger}
}

func (r *orderRecordRepository) Create(ctx context.Context, record *domain.OrderRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO order_records (
			id, remote_order_id, session_id, status, payment_method,
			total, payment_id, customer_name, customer_phone, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.RemoteOrderID,
		record.SessionID,
		record.Status,
		record.PaymentMethod,
		record.Total.String(),
		record.PaymentID,
		record.CustomerName,
		record.CustomerPhone,
		record.CreatedAt,
		record.UpdatedAt,
	)
	return err
}

func (r *orderRecordRepository) GetByRemoteOrderID(ctx context.Context, remoteOrderID int64) (*domain.OrderRecord, error) {
	query := `
		SELECT id, remote_order_id, session_id, status, payment_method,
		       total, payment_id, customer_name, customer_phone, created_at, updated_at
		FROM order_records
		WHERE remote_order_id = $1`

	record, err := scanOrderRecord(r.db.QueryRowContext(ctx, query, remoteOrderID))
	if err == sql.ErrNoRows {
		return nil, &apperrors.ErrNotFound{Resource: "order record", ID: formatInt(remoteOrderID)}
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *orderRecordRepository) UpdateStatus(ctx context.Context, remoteOrderID int64, status domain.OrderStatus, paymentID *string) error {
	query := `
		UPDATE order_records
		SET status = $2, payment_id = COALESCE($3, payment_id), updated_at = $4
		WHERE remote_order_id = $1`

	result, err := r.db.ExecContext(ctx, query, remoteOrderID, status, paymentID, time.Now())
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &apperrors.ErrNotFound{Resource: "order record", ID: formatInt(remoteOrderID)}
	}
	return nil
}

func (r *orderRecordRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.OrderRecord, error) {
	query := `
		SELECT id, remote_order_id, session_id, status, payment_method,
		       total, payment_id, customer_name, customer_phone, created_at, updated_at
		FROM order_records
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.OrderRecord
	for rows.Next() {
		record, err := scanOrderRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderRecord(row rowScanner) (*domain.OrderRecord, error) {
	var record domain.OrderRecord
	var total string
	err := row.Scan(
		&record.ID,
		&record.RemoteOrderID,
		&record.SessionID,
		&record.Status,
		&record.PaymentMethod,
		&total,
		&record.PaymentID,
		&record.CustomerName,
		&record.CustomerPhone,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Total, err = parseDecimal(total)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
