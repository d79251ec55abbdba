package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// LedgerStore opens the transactional scope used to commit ledger entries.
// All writes staged through the LedgerTx land together or not at all.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the set of writes available inside a LedgerStore scope
type LedgerTx interface {
	// ApplyItemDelta inserts the item by (tenant, name) if absent and adds delta to its stock
	// in one atomic statement, returning the resulting row.
	ApplyItemDelta(ctx context.Context, tenantID uuid.UUID, delta ItemDelta) (*entity.Item, error)
	InsertTransaction(ctx context.Context, txn *entity.Transaction) error
	GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status enum.TransactionStatus) error
}

// ItemDelta describes a stock movement for an item identified by name.
// Prices, tax rate and hsn code are only used if the item has to be created.
type ItemDelta struct {
	Name          string
	Delta         decimal.Decimal
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	TaxRate       decimal.Decimal
	HSNCode       string
}

// TransactionRepository covers reads and header edits outside the commit path
type TransactionRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, tenantID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListWithCursor returns up to Limit+1 rows ordered by (created_at, id) so the caller can detect more pages
	ListWithCursor(ctx context.Context, tenantID uuid.UUID, params *TransactionCursorFilterParams) ([]entity.Transaction, error)
	// UpdateHeader persists header fields only; lines and stock are left as they are
	UpdateHeader(ctx context.Context, txn *entity.Transaction) error
	// Delete removes the transaction and its lines without touching stock
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       enum.TransactionType
	PartyID    *uuid.UUID
	Status     enum.TransactionStatus
	From       *time.Time
	To         *time.Time
	Search     string
}

// TransactionCursorFilterParams contains cursor-based filtering for transaction queries
type TransactionCursorFilterParams struct {
	Cursor  *pagination.CursorParams
	Type    enum.TransactionType
	PartyID *uuid.UUID
	Status  enum.TransactionStatus
	From    *time.Time
	To      *time.Time
	Search  string
}
