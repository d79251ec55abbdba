package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domainRepo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	err := r.db.WithContext(ctx).Create(account).Error
	return translateError(err, "An account with this name already exists")
}

func (r *accountRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	err := r.db.WithContext(ctx).Save(account).Error
	return translateError(err, "An account with this name already exists")
}

func (r *accountRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).Delete(&entity.Account{}, "id = ?", id).Error
	return translateError(err, "")
}

func (r *accountRepository) List(ctx context.Context, tenantID uuid.UUID, params *domainRepo.AccountFilterParams) ([]entity.Account, int64, error) {
	var accounts []entity.Account
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Account{}).
		Scopes(TenantScope(tenantID), SearchScope(params.Search, "name", "alias"))

	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "")
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, 0, translateError(err, "")
	}
	return accounts, total, nil
}
