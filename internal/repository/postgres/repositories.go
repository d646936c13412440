package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		OrderRecord: NewOrderRecordRepository(db, logger),
		OrderEvent:  NewOrderEventRepository(db, logger),
	}
}
