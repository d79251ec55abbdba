package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/reconciliation"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReconciliationService diffs the books against externally supplied records
type ReconciliationService struct {
	snapshots  repository.SnapshotRepository
	statements *StatementService
}

// NewReconciliationService creates a new reconciliation service. Periods are interpreted
// in the statement service's location.
func NewReconciliationService(snapshots repository.SnapshotRepository, statements *StatementService) *ReconciliationService {
	return &ReconciliationService{
		snapshots:  snapshots,
		statements: statements,
	}
}

// ReconcileGSTR2A compares the month's purchases from registered suppliers with the
// supplier-reported invoices.
func (s *ReconciliationService) ReconcileGSTR2A(ctx context.Context, tenantID uuid.UUID, month, year int, external []reconciliation.ExternalInvoice) (*reconciliation.TaxResult, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}
	p, err := statement.MonthPeriod(month, year, s.statements.Location())
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	snap, err := s.snapshots.Load(ctx, tenantID, repository.SnapshotFilter{
		Types:     []enum.TransactionType{enum.TransactionTypePurchase},
		From:      p.Start,
		To:        p.End,
		WithLines: true,
	})
	if err != nil {
		return nil, err
	}

	book := make([]reconciliation.BookInvoice, 0, len(snap.Transactions))
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.PartyGSTIN == "" || !p.Contains(t.Date) {
			continue
		}
		book = append(book, reconciliation.BookInvoice{
			TransactionID:  t.ID,
			CounterpartyID: t.PartyGSTIN,
			DocumentNumber: t.Number,
			Date:           t.Date,
			TaxableValue:   t.TaxableTotal(),
			TotalTax:       t.TaxTotal(),
		})
	}

	result, err := reconciliation.ReconcileTax(book, external)
	if errors.Is(err, reconciliation.ErrDuplicateExternalKey) {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReconcileBank pairs the period's payments and expenses with bank statement lines
func (s *ReconciliationService) ReconcileBank(ctx context.Context, tenantID uuid.UUID, p statement.Period, bankStatement []reconciliation.BankLine) (*reconciliation.BankResult, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}

	snap, err := s.snapshots.Load(ctx, tenantID, repository.SnapshotFilter{
		Types: []enum.TransactionType{
			enum.TransactionTypePaymentIn,
			enum.TransactionTypePaymentOut,
			enum.TransactionTypeExpense,
		},
		From:        p.Start,
		To:          p.End,
		WithParties: true,
	})
	if err != nil {
		return nil, err
	}

	book := make([]reconciliation.BankLine, 0, len(snap.Transactions))
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if !p.Contains(t.Date) {
			continue
		}
		book = append(book, bookBankLine(t))
	}

	return reconciliation.ReconcileBank(book, bankStatement), nil
}

// bookBankLine puts money received on the credit side and money paid on the debit side
func bookBankLine(t *entity.Transaction) reconciliation.BankLine {
	partyName := "-"
	if t.Party != nil {
		partyName = t.Party.Name
	}
	line := reconciliation.BankLine{
		ID:          t.ID.String(),
		Date:        t.Date,
		Description: fmt.Sprintf("%s - %s (#%s)", t.Type, partyName, t.Number),
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	if t.Type == enum.TransactionTypePaymentIn {
		line.Credit = t.TotalAmount
	} else {
		line.Debit = t.TotalAmount
	}
	return line
}
