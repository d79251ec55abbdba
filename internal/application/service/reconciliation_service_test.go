package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/reconciliation"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciliationService_GSTR2A(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const gstin = "29ABCDE1234F1Z5"

	supplier := f.newParty(t, "Northwind Supply", enum.PartyTypeSupplier, gstin)
	for _, number := range []string{"P-1", "P-2"} {
		purchase := widgetSale(number)
		purchase.Type = enum.TransactionTypePurchase
		purchase.PartyID = &supplier.ID
		_, err := f.ledger.Commit(ctx, f.tenantID, purchase)
		require.NoError(t, err)
	}
	// unregistered supplier, never part of the comparison
	unregistered := widgetSale("P-3")
	unregistered.Type = enum.TransactionTypePurchase
	_, err := f.ledger.Commit(ctx, f.tenantID, unregistered)
	require.NoError(t, err)

	external := []reconciliation.ExternalInvoice{
		{CounterpartyID: gstin, DocumentNumber: "P-1", TaxableValue: dec("500"), TotalTax: dec("90")},
		{CounterpartyID: gstin, DocumentNumber: "P-2", TaxableValue: dec("500"), TotalTax: dec("80")},
		{CounterpartyID: gstin, DocumentNumber: "P-9", TaxableValue: dec("10"), TotalTax: dec("1")},
	}

	result, err := f.reconciliation.ReconcileGSTR2A(ctx, f.tenantID, 5, 2024, external)
	require.NoError(t, err)
	require.Len(t, result.Matched, 1)
	assert.Equal(t, "P-1", result.Matched[0].DocumentNumber)
	require.Len(t, result.Mismatched, 1)
	require.NotNil(t, result.Mismatched[0].BookTotal)
	assertDec(t, "590", *result.Mismatched[0].BookTotal)
	assertDec(t, "580", *result.Mismatched[0].ExternalTotal)
	require.Len(t, result.MissingFromBooks, 1)
	assert.Equal(t, "P-9", result.MissingFromBooks[0].DocumentNumber)
	assert.Empty(t, result.MissingFromExternal)

	// other months see none of the book entries
	result, err = f.reconciliation.ReconcileGSTR2A(ctx, f.tenantID, 6, 2024, nil)
	require.NoError(t, err)
	assert.Empty(t, result.MissingFromExternal)

	_, err = f.reconciliation.ReconcileGSTR2A(ctx, f.tenantID, 5, 2024, append(external, external[0]))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.reconciliation.ReconcileGSTR2A(ctx, f.tenantID, 0, 2024, external)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestReconciliationService_Bank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newParty(t, "Acme Traders", enum.PartyTypeCustomer, "")
	_, err := f.ledger.Commit(ctx, f.tenantID, &CommitInput{
		Type:        enum.TransactionTypePaymentIn,
		Number:      "PI-1",
		PartyID:     &customer.ID,
		Date:        time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC),
		TotalAmount: decPtr("1000"),
		AmountPaid:  dec("1000"),
	})
	require.NoError(t, err)
	_, err = f.ledger.Commit(ctx, f.tenantID, &CommitInput{
		Type:        enum.TransactionTypeExpense,
		Number:      "X-1",
		Date:        time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
		TotalAmount: decPtr("100"),
		AmountPaid:  dec("100"),
	})
	require.NoError(t, err)

	bankStatement := []reconciliation.BankLine{
		{ID: "b1", Date: time.Date(2024, 5, 12, 15, 30, 0, 0, time.UTC), Credit: dec("1000.004")},
		{ID: "b2", Date: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), Debit: dec("50")},
	}

	q, err := f.statements.ParseReportQuery("2024-05-01", "2024-05-31", "", "", "", "")
	require.NoError(t, err)
	result, err := f.reconciliation.ReconcileBank(ctx, f.tenantID, q.Period, bankStatement)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "paymentIn - Acme Traders (#PI-1)", result.Matched[0].Book.Description)
	assert.Equal(t, "b1", result.Matched[0].Statement.ID)
	require.Len(t, result.UnmatchedBook, 1)
	assert.Equal(t, "expense - - (#X-1)", result.UnmatchedBook[0].Description)
	assertDec(t, "100", result.UnmatchedBook[0].Debit)
	require.Len(t, result.UnmatchedStatement, 1)
	assert.Equal(t, "b2", result.UnmatchedStatement[0].ID)
}
