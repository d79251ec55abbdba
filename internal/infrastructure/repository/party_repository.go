package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"gorm.io/gorm"
)

type partyRepository struct {
	db *gorm.DB
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db *gorm.DB) domainRepo.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, party *entity.Party) error {
	err := r.db.WithContext(ctx).Create(party).Error
	return translateError(err, "A party with this name already exists")
}

func (r *partyRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Party, error) {
	var party entity.Party
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &party, nil
}

func (r *partyRepository) Update(ctx context.Context, party *entity.Party) error {
	err := r.db.WithContext(ctx).Save(party).Error
	return translateError(err, "A party with this name already exists")
}

// Delete refuses while transactions still name the party
func (r *partyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entity.Transaction{}).Scopes(TenantScope(tenantID)).
			Where("party_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return apperror.NewConflictError(fmt.Sprintf("Party is used by %d transaction(s) and cannot be deleted", refs), nil)
		}
		return tx.Scopes(TenantScope(tenantID)).Delete(&entity.Party{}, "id = ?", id).Error
	})
	return translateError(err, "")
}

func (r *partyRepository) List(ctx context.Context, tenantID uuid.UUID, params *domainRepo.PartyFilterParams) ([]entity.Party, int64, error) {
	var parties []entity.Party
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Party{}).
		Scopes(TenantScope(tenantID), SearchScope(params.Search, "name", "email", "phone", "gstin"))

	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "")
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&parties).Error
	if err != nil {
		return nil, 0, translateError(err, "")
	}
	return parties, total, nil
}
