package reconciliation

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bookInvoice(gstin, number, taxable, tax string) BookInvoice {
	return BookInvoice{
		TransactionID:  uuid.New(),
		CounterpartyID: gstin,
		DocumentNumber: number,
		Date:           time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		TaxableValue:   d(taxable),
		TotalTax:       d(tax),
	}
}

func external(gstin, number, taxable, tax string) ExternalInvoice {
	return ExternalInvoice{CounterpartyID: gstin, DocumentNumber: number, TaxableValue: d(taxable), TotalTax: d(tax)}
}

func TestReconcileTax_Classifies(t *testing.T) {
	book := []BookInvoice{
		bookInvoice("29AAA", "P-1", "1000", "180"),
		bookInvoice("29AAA", "P-2", "500", "90"),
		bookInvoice("27BBB", "P-3", "200", "36"),
	}
	ext := []ExternalInvoice{
		external("29aaa", "P-1", "1000", "180.01"),
		external("29AAA", "P-2", "500", "45"),
		external("33CCC", "X-9", "10", "1.8"),
	}

	res, err := ReconcileTax(book, ext)
	require.NoError(t, err)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, "P-1", res.Matched[0].DocumentNumber)

	require.Len(t, res.Mismatched, 1)
	mm := res.Mismatched[0]
	assert.Equal(t, "P-2", mm.DocumentNumber)
	assert.True(t, mm.BookTotal.Equal(d("590")))
	assert.True(t, mm.ExternalTotal.Equal(d("545")))
	assert.True(t, mm.Difference.Equal(d("45")))

	require.Len(t, res.MissingFromExternal, 1)
	assert.Equal(t, "P-3", res.MissingFromExternal[0].DocumentNumber)

	require.Len(t, res.MissingFromBooks, 1)
	assert.Equal(t, Key{CounterpartyID: "33CCC", DocumentNumber: "X-9"}, res.MissingFromBooks[0].Key)
	assert.Nil(t, res.MissingFromBooks[0].BookTotal)
}

func TestReconcileTax_KeyNormalization(t *testing.T) {
	book := []BookInvoice{
		bookInvoice("29AAA", "INV-1", "100", "18"),
		bookInvoice("29AAA", "INV-2", "100", "18"),
	}
	ext := []ExternalInvoice{
		// GSTIN case and padding are ignored
		external(" 29aaa ", " INV-1 ", "100", "18"),
		// document numbers are compared as written
		external("29AAA", "inv-2", "100", "18"),
	}

	res, err := ReconcileTax(book, ext)
	require.NoError(t, err)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, "INV-1", res.Matched[0].DocumentNumber)
	require.Len(t, res.MissingFromExternal, 1)
	assert.Equal(t, "INV-2", res.MissingFromExternal[0].DocumentNumber)
	require.Len(t, res.MissingFromBooks, 1)
	assert.Equal(t, "inv-2", res.MissingFromBooks[0].DocumentNumber)
}

func TestReconcileTax_DuplicateExternalKey(t *testing.T) {
	_, err := ReconcileTax(nil, []ExternalInvoice{
		external("29AAA", "P-1", "1", "0"),
		external("29AAA", "P-1", "2", "0"),
	})
	assert.True(t, errors.Is(err, ErrDuplicateExternalKey))
}

func TestReconcileTax_PartitionIsExhaustiveAndExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for iter := 0; iter < 40; iter++ {
		bookKeys := map[Key]bool{}
		extKeys := map[Key]bool{}
		var book []BookInvoice
		var ext []ExternalInvoice

		for i := 0; i < 30; i++ {
			gstin := fmt.Sprintf("G%d", rng.Intn(4))
			number := fmt.Sprintf("N%d", rng.Intn(10))
			k := Key{CounterpartyID: gstin, DocumentNumber: number}
			amount := fmt.Sprintf("%d", rng.Intn(3))
			if rng.Intn(2) == 0 {
				if !bookKeys[k] {
					bookKeys[k] = true
					book = append(book, bookInvoice(gstin, number, amount, "0"))
				}
			} else if !extKeys[k] {
				extKeys[k] = true
				ext = append(ext, external(gstin, number, amount, "0"))
			}
		}

		res, err := ReconcileTax(book, ext)
		require.NoError(t, err)

		seen := map[Key]int{}
		for _, list := range [][]TaxEntry{res.Matched, res.Mismatched, res.MissingFromBooks, res.MissingFromExternal} {
			for _, e := range list {
				seen[e.Key]++
			}
		}
		for k, n := range seen {
			assert.Equal(t, 1, n, "key %v classified more than once", k)
		}

		for _, e := range append(res.Matched, res.Mismatched...) {
			assert.True(t, bookKeys[e.Key] && extKeys[e.Key])
		}
		for _, e := range res.MissingFromExternal {
			assert.True(t, bookKeys[e.Key] && !extKeys[e.Key])
		}
		for _, e := range res.MissingFromBooks {
			assert.True(t, extKeys[e.Key] && !bookKeys[e.Key])
		}

		union := map[Key]bool{}
		for k := range bookKeys {
			union[k] = true
		}
		for k := range extKeys {
			union[k] = true
		}
		assert.Equal(t, len(union), len(seen))
	}
}

func TestReconcileBank(t *testing.T) {
	day := func(dd, hour int) time.Time { return time.Date(2024, 4, dd, hour, 0, 0, 0, time.UTC) }

	book := []BankLine{
		{ID: "b1", Date: day(3, 9), Credit: d("1000")},
		{ID: "b2", Date: day(3, 9), Debit: d("250")},
		{ID: "b3", Date: day(4, 9), Credit: d("75")},
		{ID: "b4", Date: day(5, 9), Debit: d("40")},
	}
	stmt := []BankLine{
		{ID: "s1", Date: day(3, 18), Credit: d("1000.01")},
		{ID: "s2", Date: day(3, 18), Debit: d("250")},
		{ID: "s3", Date: day(5, 12), Credit: d("40")},
		{ID: "s4", Date: day(6, 12), Credit: d("75")},
	}

	res := ReconcileBank(book, stmt)

	require.Len(t, res.Matched, 2)
	assert.Equal(t, "b2", res.Matched[0].Book.ID)
	assert.Equal(t, "s2", res.Matched[0].Statement.ID)
	assert.Equal(t, "b1", res.Matched[1].Book.ID)
	assert.Equal(t, "s1", res.Matched[1].Statement.ID)

	// wrong day and wrong side stay unmatched
	require.Len(t, res.UnmatchedBook, 2)
	assert.Equal(t, "b3", res.UnmatchedBook[0].ID)
	assert.Equal(t, "b4", res.UnmatchedBook[1].ID)
	require.Len(t, res.UnmatchedStatement, 2)
}

func TestReconcileBank_EachStatementLineUsedOnce(t *testing.T) {
	at := time.Date(2024, 4, 3, 10, 0, 0, 0, time.UTC)
	book := []BankLine{
		{ID: "b1", Date: at, Credit: d("100")},
		{ID: "b2", Date: at, Credit: d("100")},
	}
	stmt := []BankLine{{ID: "s1", Date: at, Credit: d("100")}}

	res := ReconcileBank(book, stmt)
	assert.Len(t, res.Matched, 1)
	assert.Len(t, res.UnmatchedBook, 1)
	assert.Empty(t, res.UnmatchedStatement)
}
