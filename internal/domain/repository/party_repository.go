package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// PartyRepository defines the interface for party data operations
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Party, error)
	Update(ctx context.Context, party *entity.Party) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, params *PartyFilterParams) ([]entity.Party, int64, error)
}

// PartyFilterParams contains filtering parameters for party queries
type PartyFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       enum.PartyType
}
