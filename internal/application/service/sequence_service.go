package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// SequenceService hands out document numbers per (tenant, transaction type)
type SequenceService struct {
	counterRepo repository.CounterRepository
	accountRepo repository.AccountRepository
}

// NewSequenceService creates a new sequence service
func NewSequenceService(counterRepo repository.CounterRepository, accountRepo repository.AccountRepository) *SequenceService {
	return &SequenceService{
		counterRepo: counterRepo,
		accountRepo: accountRepo,
	}
}

// AllocatedNumber is a freshly issued number and its display form
type AllocatedNumber struct {
	Type      enum.TransactionType `json:"type"`
	Value     int64                `json:"value"`
	Formatted string               `json:"formatted"`
}

// NextNumber issues the next number for docType. Numbers start at 1, are never reused,
// and a number whose transaction later fails to commit is simply skipped.
func (s *SequenceService) NextNumber(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, apperror.ErrTenantRequired
	}
	typ, err := enum.ParseTransactionType(docType)
	if err != nil {
		return 0, apperror.NewBadRequestError(err.Error())
	}
	return s.counterRepo.Next(ctx, tenantID, typ.String())
}

// Allocate issues the next number and formats it with the prefix of the given series account
func (s *SequenceService) Allocate(ctx context.Context, tenantID uuid.UUID, docType string, seriesID *uuid.UUID) (*AllocatedNumber, error) {
	prefix := ""
	if seriesID != nil {
		account, err := s.accountRepo.GetByID(ctx, tenantID, *seriesID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Series account")
		}
		if account.Type != enum.AccountTypeSaleSeries && account.Type != enum.AccountTypePurchaseSeries {
			return nil, apperror.NewBadRequestError("Account is not a document series")
		}
		if account.Prefix != nil {
			prefix = *account.Prefix
		}
	}

	n, err := s.NextNumber(ctx, tenantID, docType)
	if err != nil {
		return nil, err
	}
	return &AllocatedNumber{
		Type:      enum.TransactionType(docType),
		Value:     n,
		Formatted: FormatNumber(prefix, n),
	}, nil
}

// Current returns the last number issued for docType, 0 if none
func (s *SequenceService) Current(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error) {
	typ, err := enum.ParseTransactionType(docType)
	if err != nil {
		return 0, apperror.NewBadRequestError(err.Error())
	}
	return s.counterRepo.Peek(ctx, tenantID, typ.String())
}

// FormatNumber renders a document number as "<prefix><n>"
func FormatNumber(prefix string, n int64) string {
	return prefix + strconv.FormatInt(n, 10)
}
