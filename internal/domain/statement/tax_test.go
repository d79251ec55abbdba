package statement

import (
	"testing"
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(hsn, qty, rate, taxable, cgst, sgst, igst string) entity.TransactionLine {
	return entity.TransactionLine{
		HSNCode:      hsn,
		Quantity:     d(qty),
		TaxRate:      d(rate),
		TaxableValue: d(taxable),
		CGST:         d(cgst),
		SGST:         d(sgst),
		IGST:         d(igst),
	}
}

func taxSnapshot() *Snapshot {
	s1 := txn(enum.TransactionTypeSale, day(2024, 4, 3), "1180", "0")
	s1.PartyGSTIN = "29ABCDE1234F1Z5"
	s1.Lines = []entity.TransactionLine{line("8471", "2", "18", "1000", "90", "90", "0")}

	s2 := txn(enum.TransactionTypeSale, day(2024, 4, 10), "2360", "0")
	s2.PartyGSTIN = "27PQRST5678K1Z2"
	s2.Lines = []entity.TransactionLine{line("8471", "1", "18", "2000", "0", "0", "360")}

	s3 := txn(enum.TransactionTypeSale, day(2024, 4, 12), "590", "0")
	s3.PartyGSTIN = "29ABCDE1234F1Z5"
	s3.Lines = []entity.TransactionLine{line("9983", "1", "18", "500", "45", "45", "0")}

	walkIn := txn(enum.TransactionTypeSale, day(2024, 4, 15), "105", "105")
	walkIn.Lines = []entity.TransactionLine{line("8471", "1", "5", "100", "2.5", "2.5", "0")}

	ret := txn(enum.TransactionTypeSaleReturn, day(2024, 4, 20), "118", "0")
	ret.Lines = []entity.TransactionLine{line("9983", "1", "18", "100", "9", "9", "0")}

	p1 := txn(enum.TransactionTypePurchase, day(2024, 4, 5), "1120", "0")
	p1.PartyGSTIN = "33ZZZZZ9999Z1Z9"
	p1.Lines = []entity.TransactionLine{line("8471", "5", "12", "1000", "60", "60", "0")}

	nextMonth := txn(enum.TransactionTypeSale, day(2024, 5, 1), "118", "0")
	nextMonth.PartyGSTIN = "29ABCDE1234F1Z5"
	nextMonth.Lines = []entity.TransactionLine{line("8471", "1", "18", "100", "9", "9", "0")}

	return &Snapshot{Transactions: []entity.Transaction{s1, s2, s3, walkIn, ret, p1, nextMonth}}
}

func april(t *testing.T) Period {
	p, err := MonthPeriod(4, 2024, time.UTC)
	require.NoError(t, err)
	return p
}

func TestBuildGSTR1_GroupsByGSTINAndSkipsUnregistered(t *testing.T) {
	rows := BuildGSTR1(taxSnapshot(), april(t))
	require.Len(t, rows, 2)

	// ordered by invoice value, largest first
	assert.Equal(t, "27PQRST5678K1Z2", rows[0].GSTIN)
	assert.True(t, rows[0].TotalInvoiceValue.Equal(d("2360")))
	assert.True(t, rows[0].TotalIGST.Equal(d("360")))

	assert.Equal(t, "29ABCDE1234F1Z5", rows[1].GSTIN)
	assert.Equal(t, 2, rows[1].InvoiceCount)
	assert.True(t, rows[1].TotalTaxableValue.Equal(d("1500")))
	assert.True(t, rows[1].TotalCGST.Equal(d("135")))
	assert.True(t, rows[1].TotalInvoiceValue.Equal(d("1770")))
	require.Len(t, rows[1].Invoices, 2)
	assert.True(t, rows[1].Invoices[0].Date.Before(rows[1].Invoices[1].Date))
}

func TestBuildGSTR2(t *testing.T) {
	rows := BuildGSTR2(taxSnapshot(), april(t))
	require.Len(t, rows, 1)
	assert.Equal(t, "33ZZZZZ9999Z1Z9", rows[0].GSTIN)
	assert.True(t, rows[0].TotalTaxableValue.Equal(d("1000")))
}

func TestBuildHSNSummary(t *testing.T) {
	rows := BuildHSNSummary(taxSnapshot(), april(t))
	require.Len(t, rows, 2)

	assert.Equal(t, "8471", rows[0].HSNCode)
	assert.True(t, rows[0].TotalQuantity.Equal(d("4")))
	assert.True(t, rows[0].TotalTaxableValue.Equal(d("3100")))
	assert.True(t, rows[0].GSTRate.Equal(d("18")))

	// returns are summed positively alongside sales
	assert.Equal(t, "9983", rows[1].HSNCode)
	assert.True(t, rows[1].TotalTaxableValue.Equal(d("600")))
	assert.True(t, rows[1].TotalQuantity.Equal(d("2")))
}

func TestBuildGSTR3B(t *testing.T) {
	r := BuildGSTR3B(taxSnapshot(), april(t))

	assert.True(t, r.OutwardTaxableSupplies.Equal(d("3600")))
	assert.True(t, r.OutwardCGST.Equal(d("137.5")))
	assert.True(t, r.OutwardIGST.Equal(d("360")))
	assert.True(t, r.ITCAvailableCGST.Equal(d("60")))
	assert.True(t, r.ITCAvailableSGST.Equal(d("60")))
	assert.True(t, r.ITCAvailableIGST.IsZero())
}

func TestBuildGSTR9(t *testing.T) {
	fy, err := FinancialYearPeriod(2024, time.UTC)
	require.NoError(t, err)

	r := BuildGSTR9(taxSnapshot(), fy)
	assert.True(t, r.TotalTaxableValue.Equal(d("3700")))
	assert.True(t, r.TotalTaxPayable.Equal(d("653")))
	assert.True(t, r.TotalITCClaimed.Equal(d("120")))
}
