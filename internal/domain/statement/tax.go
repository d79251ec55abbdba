package statement

import (
	"sort"
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// InvoiceRef lists one invoice inside a GSTR-1/2 party group
type InvoiceRef struct {
	Number string          `json:"number"`
	Date   time.Time       `json:"date"`
	Value  decimal.Decimal `json:"value"`
}

// PartyTaxSummary groups invoices of one counterparty GSTIN
type PartyTaxSummary struct {
	GSTIN             string          `json:"gstin"`
	TotalTaxableValue decimal.Decimal `json:"total_taxable_value"`
	TotalCGST         decimal.Decimal `json:"total_cgst"`
	TotalSGST         decimal.Decimal `json:"total_sgst"`
	TotalIGST         decimal.Decimal `json:"total_igst"`
	TotalInvoiceValue decimal.Decimal `json:"total_invoice_value"`
	InvoiceCount      int             `json:"invoice_count"`
	Invoices          []InvoiceRef    `json:"invoices"`
}

// HSNSummaryRow aggregates sale and sale return lines of one classification code
type HSNSummaryRow struct {
	HSNCode           string          `json:"hsn_code"`
	Description       string          `json:"description,omitempty"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	TotalTaxableValue decimal.Decimal `json:"total_taxable_value"`
	TotalCGST         decimal.Decimal `json:"total_cgst"`
	TotalSGST         decimal.Decimal `json:"total_sgst"`
	TotalIGST         decimal.Decimal `json:"total_igst"`
	GSTRate           decimal.Decimal `json:"gst_rate"`
}

// GSTR3B is the monthly outward supply vs input tax credit summary
type GSTR3B struct {
	OutwardTaxableSupplies decimal.Decimal `json:"outward_taxable_supplies"`
	OutwardCGST            decimal.Decimal `json:"outward_cgst"`
	OutwardSGST            decimal.Decimal `json:"outward_sgst"`
	OutwardIGST            decimal.Decimal `json:"outward_igst"`
	ITCAvailableCGST       decimal.Decimal `json:"itc_available_cgst"`
	ITCAvailableSGST       decimal.Decimal `json:"itc_available_sgst"`
	ITCAvailableIGST       decimal.Decimal `json:"itc_available_igst"`
}

// GSTR9 is the annual return summary
type GSTR9 struct {
	TotalTaxableValue decimal.Decimal `json:"total_taxable_value"`
	TotalTaxPayable   decimal.Decimal `json:"total_tax_payable"`
	TotalITCClaimed   decimal.Decimal `json:"total_itc_claimed"`
}

// BuildGSTR1 groups sales by counterparty GSTIN
func BuildGSTR1(s *Snapshot, p Period) []PartyTaxSummary {
	return partyTaxSummary(s, p, enum.TransactionTypeSale)
}

// BuildGSTR2 groups purchases by counterparty GSTIN
func BuildGSTR2(s *Snapshot, p Period) []PartyTaxSummary {
	return partyTaxSummary(s, p, enum.TransactionTypePurchase)
}

func partyTaxSummary(s *Snapshot, p Period, typ enum.TransactionType) []PartyTaxSummary {
	groups := make(map[string]*PartyTaxSummary)

	s.inPeriod(p, func(t *entity.Transaction) {
		if t.Type != typ || t.PartyGSTIN == "" {
			return
		}
		g, ok := groups[t.PartyGSTIN]
		if !ok {
			g = &PartyTaxSummary{
				GSTIN:             t.PartyGSTIN,
				TotalTaxableValue: decimal.Zero,
				TotalCGST:         decimal.Zero,
				TotalSGST:         decimal.Zero,
				TotalIGST:         decimal.Zero,
				TotalInvoiceValue: decimal.Zero,
			}
			groups[t.PartyGSTIN] = g
		}
		for _, l := range t.Lines {
			g.TotalTaxableValue = g.TotalTaxableValue.Add(l.TaxableValue)
			g.TotalCGST = g.TotalCGST.Add(l.CGST)
			g.TotalSGST = g.TotalSGST.Add(l.SGST)
			g.TotalIGST = g.TotalIGST.Add(l.IGST)
		}
		g.TotalInvoiceValue = g.TotalInvoiceValue.Add(t.TotalAmount)
		g.InvoiceCount++
		g.Invoices = append(g.Invoices, InvoiceRef{Number: t.Number, Date: t.Date, Value: t.TotalAmount})
	})

	out := make([]PartyTaxSummary, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.Invoices, func(i, j int) bool {
			if !g.Invoices[i].Date.Equal(g.Invoices[j].Date) {
				return g.Invoices[i].Date.Before(g.Invoices[j].Date)
			}
			return g.Invoices[i].Number < g.Invoices[j].Number
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalInvoiceValue.Cmp(out[j].TotalInvoiceValue); c != 0 {
			return c > 0
		}
		return out[i].GSTIN < out[j].GSTIN
	})
	return out
}

// BuildHSNSummary aggregates sale and saleReturn lines by HSN code. GSTRate is the highest
// rate seen for the code. Descriptions are filled in by the caller.
func BuildHSNSummary(s *Snapshot, p Period) []HSNSummaryRow {
	groups := make(map[string]*HSNSummaryRow)

	s.inPeriod(p, func(t *entity.Transaction) {
		if t.Type != enum.TransactionTypeSale && t.Type != enum.TransactionTypeSaleReturn {
			return
		}
		for _, l := range t.Lines {
			g, ok := groups[l.HSNCode]
			if !ok {
				g = &HSNSummaryRow{
					HSNCode:           l.HSNCode,
					TotalQuantity:     decimal.Zero,
					TotalTaxableValue: decimal.Zero,
					TotalCGST:         decimal.Zero,
					TotalSGST:         decimal.Zero,
					TotalIGST:         decimal.Zero,
					GSTRate:           l.TaxRate,
				}
				groups[l.HSNCode] = g
			}
			g.TotalQuantity = g.TotalQuantity.Add(l.Quantity)
			g.TotalTaxableValue = g.TotalTaxableValue.Add(l.TaxableValue)
			g.TotalCGST = g.TotalCGST.Add(l.CGST)
			g.TotalSGST = g.TotalSGST.Add(l.SGST)
			g.TotalIGST = g.TotalIGST.Add(l.IGST)
			if l.TaxRate.GreaterThan(g.GSTRate) {
				g.GSTRate = l.TaxRate
			}
		}
	})

	out := make([]HSNSummaryRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HSNCode < out[j].HSNCode })
	return out
}

type taxTotals struct {
	taxable, cgst, sgst, igst decimal.Decimal
}

func (t taxTotals) tax() decimal.Decimal {
	return t.cgst.Add(t.sgst).Add(t.igst)
}

// lineTotals sums line-level tax figures of one transaction type within p
func lineTotals(s *Snapshot, p Period, typ enum.TransactionType) taxTotals {
	out := taxTotals{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}
	s.inPeriod(p, func(t *entity.Transaction) {
		if t.Type != typ {
			return
		}
		for _, l := range t.Lines {
			out.taxable = out.taxable.Add(l.TaxableValue)
			out.cgst = out.cgst.Add(l.CGST)
			out.sgst = out.sgst.Add(l.SGST)
			out.igst = out.igst.Add(l.IGST)
		}
	})
	return out
}

// BuildGSTR3B summarises outward supplies (sales) against input credit (purchases)
func BuildGSTR3B(s *Snapshot, month Period) GSTR3B {
	sales := lineTotals(s, month, enum.TransactionTypeSale)
	purchases := lineTotals(s, month, enum.TransactionTypePurchase)
	return GSTR3B{
		OutwardTaxableSupplies: sales.taxable,
		OutwardCGST:            sales.cgst,
		OutwardSGST:            sales.sgst,
		OutwardIGST:            sales.igst,
		ITCAvailableCGST:       purchases.cgst,
		ITCAvailableSGST:       purchases.sgst,
		ITCAvailableIGST:       purchases.igst,
	}
}

// BuildGSTR9 summarises a financial year
func BuildGSTR9(s *Snapshot, year Period) GSTR9 {
	sales := lineTotals(s, year, enum.TransactionTypeSale)
	purchases := lineTotals(s, year, enum.TransactionTypePurchase)
	return GSTR9{
		TotalTaxableValue: sales.taxable,
		TotalTaxPayable:   sales.tax(),
		TotalITCClaimed:   purchases.tax(),
	}
}
