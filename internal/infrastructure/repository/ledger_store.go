package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates the store that scopes ledger commits in a database transaction
func NewLedgerStore(db *gorm.DB) domainRepo.LedgerStore {
	return &ledgerStore{db: db}
}

// WithinTx runs fn inside one database transaction. Any error returned by fn, or by
// the commit itself, rolls back everything fn wrote.
func (s *ledgerStore) WithinTx(ctx context.Context, fn func(tx domainRepo.LedgerTx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
	return translateError(err, "")
}

type ledgerTx struct {
	db *gorm.DB
}

// ApplyItemDelta upserts on (tenant_id, name): a new item starts with stock = delta,
// an existing one has delta added to its stock by the database.
func (t *ledgerTx) ApplyItemDelta(ctx context.Context, tenantID uuid.UUID, delta domainRepo.ItemDelta) (*entity.Item, error) {
	item := entity.Item{
		TenantID:      tenantID,
		Name:          delta.Name,
		SalePrice:     delta.SalePrice,
		PurchasePrice: delta.PurchasePrice,
		Stock:         delta.Delta,
		TaxRate:       delta.TaxRate,
		HSNCode:       delta.HSNCode,
	}

	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"stock":      gorm.Expr("items.stock + excluded.stock"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	var current entity.Item
	err = t.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, delta.Name).
		First(&current).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &current, nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, txn *entity.Transaction) error {
	err := t.db.WithContext(ctx).Omit("Party").Create(txn).Error
	return translateError(err, "Transaction number already exists")
}

func (t *ledgerTx) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := t.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &txn, nil
}

func (t *ledgerTx) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status enum.TransactionStatus) error {
	result := t.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Transaction")
	}
	return nil
}
