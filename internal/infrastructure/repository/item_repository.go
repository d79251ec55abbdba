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

var itemSortColumns = map[string]bool{
	"name":       true,
	"stock":      true,
	"sale_price": true,
	"created_at": true,
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	err := r.db.WithContext(ctx).Create(item).Error
	return translateError(err, "An item with this name already exists")
}

func (r *itemRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &item, nil
}

func (r *itemRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).First(&item, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "")
	}
	return &item, nil
}

// UpdateDetails never writes stock
func (r *itemRepository) UpdateDetails(ctx context.Context, item *entity.Item) error {
	err := r.db.WithContext(ctx).Model(&entity.Item{}).
		Scopes(TenantScope(item.TenantID)).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":           item.Name,
			"sale_price":     item.SalePrice,
			"purchase_price": item.PurchasePrice,
			"tax_rate":       item.TaxRate,
			"hsn_code":       item.HSNCode,
			"updated_at":     time.Now().UTC(),
		}).Error
	return translateError(err, "An item with this name already exists")
}

func (r *itemRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).Delete(&entity.Item{}, "id = ?", id).Error
	return translateError(err, "")
}

func (r *itemRepository) List(ctx context.Context, tenantID uuid.UUID, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{}).
		Scopes(TenantScope(tenantID), SearchScope(params.Search, "name", "hsn_code"))

	if params.LowStock {
		query = query.Where("stock <= 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "")
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(orderBy(params.SortBy, params.SortOrder, itemSortColumns, "name ASC")).
		Find(&items).Error
	if err != nil {
		return nil, 0, translateError(err, "")
	}
	return items, total, nil
}
