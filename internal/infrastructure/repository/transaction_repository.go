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
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *transactionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Preload("Party").
		Preload("Lines", preloadLines).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &txn, nil
}

// transactionFilterScope applies the listing filters shared by page and cursor listing
func transactionFilterScope(typ enum.TransactionType, status enum.TransactionStatus, partyID *uuid.UUID, from, to *time.Time, search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = SearchScope(search, "number", "party_gstin")(db)
		if typ != "" {
			db = db.Where("type = ?", typ)
		}
		if status != "" {
			db = db.Where("status = ?", status)
		}
		if partyID != nil {
			db = db.Where("party_id = ?", *partyID)
		}
		if from != nil {
			db = db.Where("date >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("date <= ?", to.UTC())
		}
		return db
	}
}

func (r *transactionRepository) List(ctx context.Context, tenantID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(TenantScope(tenantID), transactionFilterScope(params.Type, params.Status, params.PartyID, params.From, params.To, params.Search))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "")
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Party").
		Preload("Lines", preloadLines).
		Order("date DESC, number DESC").
		Find(&txns).Error
	if err != nil {
		return nil, 0, translateError(err, "")
	}
	return txns, total, nil
}

// ListWithCursor returns transactions using cursor-based pagination
func (r *transactionRepository) ListWithCursor(ctx context.Context, tenantID uuid.UUID, params *domainRepo.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	var txns []entity.Transaction

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(TenantScope(tenantID), transactionFilterScope(params.Type, params.Status, params.PartyID, params.From, params.To, params.Search))

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	backward := params.Cursor.Backward()
	order := "date ASC, id ASC"
	if backward {
		order = "date DESC, id DESC"
	}
	if cursor != nil {
		op := ">"
		if backward {
			op = "<"
		}
		query = query.Where("((date "+op+" ?) OR (date = ? AND id "+op+" ?))", cursor.Date, cursor.Date, cursor.ID)
	}

	// limit+1 tells the caller whether another page exists
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Lines", preloadLines).
		Order(order).
		Find(&txns).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	if backward {
		for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
			txns[i], txns[j] = txns[j], txns[i]
		}
	}
	return txns, nil
}

func (r *transactionRepository) UpdateHeader(ctx context.Context, txn *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(TenantScope(txn.TenantID)).
		Where("id = ?", txn.ID).
		Updates(map[string]interface{}{
			"number":       txn.Number,
			"status":       txn.Status,
			"party_id":     txn.PartyID,
			"party_gstin":  txn.PartyGSTIN,
			"account_id":   txn.AccountID,
			"date":         txn.Date.UTC(),
			"subtotal":     txn.Subtotal,
			"discount":     txn.Discount,
			"total_amount": txn.TotalAmount,
			"amount_paid":  txn.AmountPaid,
			"balance_due":  txn.BalanceDue,
			"notes":        txn.Notes,
			"updated_at":   time.Now().UTC(),
		})
	return translateError(result.Error, "Transaction number already exists")
}

// Delete removes lines first; sqlite does not enforce the cascade unless foreign keys are on
func (r *transactionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND transaction_id = ?", tenantID, id).
			Delete(&entity.TransactionLine{}).Error; err != nil {
			return err
		}
		return tx.Scopes(TenantScope(tenantID)).Delete(&entity.Transaction{}, "id = ?", id).Error
	})
	return translateError(err, "")
}
