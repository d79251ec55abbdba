package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// AccountRepository defines the interface for master account operations
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, params *AccountFilterParams) ([]entity.Account, int64, error)
}

// AccountFilterParams contains filtering parameters for account queries
type AccountFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       enum.AccountType
}
