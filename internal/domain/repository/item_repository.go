package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// ItemRepository defines the interface for item master data.
// Stock is never written here; it only changes through LedgerTx.ApplyItemDelta.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Item, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*entity.Item, error)
	// UpdateDetails writes the static fields (name, prices, tax rate, hsn code)
	UpdateDetails(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, params *ItemFilterParams) ([]entity.Item, int64, error)
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool // stock <= 0
	SortBy     string
	SortOrder  string
}
