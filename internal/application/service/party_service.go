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
	"github.com/ttacon/libphonenumber"
)

// phoneRegion is assumed for numbers written without a country code
const phoneRegion = "IN"

// PartyService manages customers and suppliers
type PartyService struct {
	reportInvalidation

	partyRepo repository.PartyRepository
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo repository.PartyRepository) *PartyService {
	return &PartyService{partyRepo: partyRepo}
}

// WithReportInvalidator drops the tenant's cached reports after every party write
func (s *PartyService) WithReportInvalidator(inv ReportInvalidator) *PartyService {
	s.reports = inv
	return s
}

// PartyInput represents the create and update party input
type PartyInput struct {
	Name    string `validate:"required,max=255"`
	Type    enum.PartyType
	GSTIN   *string `validate:"omitempty,gstin"`
	Email   *string `validate:"omitempty,email,max=255"`
	Phone   *string `validate:"omitempty,max=50"`
	Address *string
	State   *string `validate:"omitempty,max=100"`
}

func validateParty(input *PartyInput) error {
	errs := fieldErrors(input)
	if !input.Type.Valid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: fmt.Sprintf("unknown party type %q", input.Type)})
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		phone, err := normalizePhone(*input.Phone)
		if err != nil {
			errs = append(errs, apperror.FieldError{Field: "phone", Message: err.Error()})
		} else {
			input.Phone = &phone
		}
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// normalizePhone parses raw and renders it in E.164
func normalizePhone(raw string) (string, error) {
	num, err := libphonenumber.Parse(raw, phoneRegion)
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %v", err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("phone number is not valid")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

func (input *PartyInput) apply(party *entity.Party) {
	party.Name = strings.TrimSpace(input.Name)
	party.Type = input.Type
	party.GSTIN = input.GSTIN
	party.Email = input.Email
	party.Phone = input.Phone
	party.Address = input.Address
	party.State = input.State
}

// CreateParty creates a new party
func (s *PartyService) CreateParty(ctx context.Context, tenantID uuid.UUID, input *PartyInput) (*entity.Party, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}
	if input.Type == "" {
		input.Type = enum.PartyTypeCustomer
	}
	if err := validateParty(input); err != nil {
		return nil, err
	}

	party := &entity.Party{TenantID: tenantID}
	input.apply(party)

	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return party, nil
}

// GetParty retrieves a party by ID
func (s *PartyService) GetParty(ctx context.Context, tenantID, id uuid.UUID) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	return party, nil
}

// ListParties lists parties with filtering
func (s *PartyService) ListParties(ctx context.Context, tenantID uuid.UUID, params *repository.PartyFilterParams) (*pagination.PaginatedResult[entity.Party], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	parties, total, err := s.partyRepo.List(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(parties, pag), nil
}

// UpdateParty replaces the editable fields of a party. Transactions keep the GSTIN
// captured when they were committed.
func (s *PartyService) UpdateParty(ctx context.Context, tenantID, id uuid.UUID, input *PartyInput) (*entity.Party, error) {
	party, err := s.GetParty(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if input.Type == "" {
		input.Type = party.Type
	}
	if err := validateParty(input); err != nil {
		return nil, err
	}

	input.apply(party)
	if err := s.partyRepo.Update(ctx, party); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return party, nil
}

// DeleteParty deletes a party that no transaction refers to
func (s *PartyService) DeleteParty(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetParty(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.partyRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, tenantID)
	return nil
}
