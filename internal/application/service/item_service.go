package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemService manages item master data. Stock is set once at creation and afterwards
// only moves through committed transactions.
type ItemService struct {
	reportInvalidation

	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// WithReportInvalidator drops the tenant's cached reports after every item write
func (s *ItemService) WithReportInvalidator(inv ReportInvalidator) *ItemService {
	s.reports = inv
	return s
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name          string `validate:"required,max=255"`
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	OpeningStock  decimal.Decimal
	TaxRate       decimal.Decimal
	HSNCode       string `validate:"omitempty,max=16,numeric"`
}

// UpdateItemInput represents the update item input; nil fields are left unchanged
type UpdateItemInput struct {
	Name          *string `validate:"omitempty,min=1,max=255"`
	SalePrice     *decimal.Decimal
	PurchasePrice *decimal.Decimal
	TaxRate       *decimal.Decimal
	HSNCode       *string `validate:"omitempty,max=16,numeric"`
}

func checkRate(errs []apperror.FieldError, v decimal.Decimal) []apperror.FieldError {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, apperror.FieldError{Field: "taxRate", Message: "must be between 0 and 100"})
	}
	return errs
}

// CreateItem creates a new item with its opening stock
func (s *ItemService) CreateItem(ctx context.Context, tenantID uuid.UUID, input *CreateItemInput) (*entity.Item, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}

	errs := fieldErrors(input)
	errs = requireNonNegative(errs, "salePrice", input.SalePrice)
	errs = requireNonNegative(errs, "purchasePrice", input.PurchasePrice)
	errs = checkRate(errs, input.TaxRate)
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	item := &entity.Item{
		TenantID:      tenantID,
		Name:          strings.TrimSpace(input.Name),
		SalePrice:     input.SalePrice,
		PurchasePrice: input.PurchasePrice,
		Stock:         input.OpeningStock,
		TaxRate:       input.TaxRate,
		HSNCode:       input.HSNCode,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, tenantID, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items with filtering
func (s *ItemService) ListItems(ctx context.Context, tenantID uuid.UUID, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItem changes static item fields. Stock cannot be edited here.
func (s *ItemService) UpdateItem(ctx context.Context, tenantID, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors(input)
	if input.SalePrice != nil {
		errs = requireNonNegative(errs, "salePrice", *input.SalePrice)
		item.SalePrice = *input.SalePrice
	}
	if input.PurchasePrice != nil {
		errs = requireNonNegative(errs, "purchasePrice", *input.PurchasePrice)
		item.PurchasePrice = *input.PurchasePrice
	}
	if input.TaxRate != nil {
		errs = checkRate(errs, *input.TaxRate)
		item.TaxRate = *input.TaxRate
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.HSNCode != nil {
		item.HSNCode = *input.HSNCode
	}

	if err := s.itemRepo.UpdateDetails(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return s.GetItem(ctx, tenantID, id)
}

// DeleteItem deletes an item. Lines that referenced it keep their copy of the name.
func (s *ItemService) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, tenantID)
	return nil
}
