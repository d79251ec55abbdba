package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// AccountService manages the chart of master accounts
type AccountService struct {
	reportInvalidation

	accountRepo repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// WithReportInvalidator drops the tenant's cached reports after every account write
func (s *AccountService) WithReportInvalidator(inv ReportInvalidator) *AccountService {
	s.reports = inv
	return s
}

// AccountInput represents the create and update account input
type AccountInput struct {
	Name          string  `validate:"required,max=255"`
	Alias         *string `validate:"omitempty,max=255"`
	Group         *string `validate:"omitempty,max=100"`
	Type          enum.AccountType
	Prefix        *string `validate:"omitempty,max=20"`
	GSTIN         *string `validate:"omitempty,gstin"`
	OpeningAmount decimal.Decimal
	OpeningSide   enum.BalanceSide
	IsActive      *bool
}

func validateAccount(input *AccountInput) error {
	errs := fieldErrors(input)
	if !input.Type.Valid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: fmt.Sprintf("unknown account type %q", input.Type)})
	}
	if input.OpeningSide != "" && !input.OpeningSide.Valid() {
		errs = append(errs, apperror.FieldError{Field: "openingSide", Message: "must be Dr or Cr"})
	}
	errs = requireNonNegative(errs, "openingAmount", input.OpeningAmount)
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func (input *AccountInput) apply(account *entity.Account) {
	account.Name = strings.TrimSpace(input.Name)
	account.Alias = input.Alias
	account.Group = input.Group
	account.Type = input.Type
	account.Prefix = input.Prefix
	account.GSTIN = input.GSTIN
	account.OpeningAmount = input.OpeningAmount
	account.OpeningSide = input.OpeningSide
	if account.OpeningSide == "" {
		account.OpeningSide = enum.BalanceSideDebit
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
}

// CreateAccount creates a new master account
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, input *AccountInput) (*entity.Account, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}
	if err := validateAccount(input); err != nil {
		return nil, err
	}

	account := &entity.Account{TenantID: tenantID, IsActive: true}
	input.apply(account)

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, tenantID, id uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}

// ListAccounts lists accounts with filtering
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID, params *repository.AccountFilterParams) (*pagination.PaginatedResult[entity.Account], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	accounts, total, err := s.accountRepo.List(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(accounts, pag), nil
}

// UpdateAccount replaces the editable fields of an account, opening balance included
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, id uuid.UUID, input *AccountInput) (*entity.Account, error) {
	account, err := s.GetAccount(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := validateAccount(input); err != nil {
		return nil, err
	}

	input.apply(account)
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return account, nil
}

// DeleteAccount deletes an account. Transactions that referenced it keep the dangling id.
func (s *AccountService) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetAccount(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.accountRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, tenantID)
	return nil
}
