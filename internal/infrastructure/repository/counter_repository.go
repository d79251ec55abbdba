package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

// nextCounterSQL creates the counter at 1 or increments it, in one statement.
// Works unchanged on PostgreSQL and sqlite (3.35+).
const nextCounterSQL = `INSERT INTO counters (tenant_id, doc_type, value, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (tenant_id, doc_type)
DO UPDATE SET value = counters.value + 1, updated_at = excluded.updated_at
RETURNING value`

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Next(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw(nextCounterSQL, tenantID, docType, time.Now().UTC()).
		Scan(&value).Error
	if err != nil {
		return 0, translateError(err, "")
	}
	return value, nil
}

func (r *counterRepository) Peek(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error) {
	var counter entity.Counter
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND doc_type = ?", tenantID, docType).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, translateError(err, "")
	}
	return counter.Value, nil
}
