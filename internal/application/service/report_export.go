package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/internal/infrastructure/export"
)

const exportDateLayout = "2006-01-02"

// Export builds the named report and lays it out as worksheets
func (s *StatementService) Export(ctx context.Context, tenantID uuid.UUID, name string, q *ReportQuery) ([]export.Sheet, error) {
	report, err := s.Run(ctx, tenantID, name, q)
	if err != nil {
		return nil, err
	}
	return reportSheets(name, report)
}

func reportSheets(name string, report interface{}) ([]export.Sheet, error) {
	switch r := report.(type) {
	case statement.ProfitAndLoss:
		sheet := export.Sheet{Name: "Profit and Loss", Headers: []string{"Line", "Amount"}}
		sheet.AddRow("Revenue", r.Revenue)
		sheet.AddRow("Cost of Goods Sold", r.CostOfGoodsSold)
		sheet.AddRow("Gross Profit", r.GrossProfit)
		sheet.AddRow("Expenses", r.Expenses)
		sheet.AddRow("Net Profit", r.NetProfit)
		return []export.Sheet{sheet}, nil

	case statement.BalanceSheet:
		sheet := export.Sheet{Name: "Balance Sheet", Headers: []string{"Line", "Amount"}}
		sheet.AddRow("Cash and Bank", r.CashAndBank)
		sheet.AddRow("Accounts Receivable", r.AccountsReceivable)
		sheet.AddRow("Inventory Value", r.InventoryValue)
		sheet.AddRow("Accounts Payable", r.AccountsPayable)
		sheet.AddRow("Owner Capital", r.OwnerCapital)
		sheet.AddRow("Net Profit", r.NetProfit)
		return []export.Sheet{sheet}, nil

	case []statement.TrialBalanceRow:
		sheet := export.Sheet{Name: "Trial Balance", Headers: []string{
			"Account", "Opening Dr", "Opening Cr", "Period Dr", "Period Cr", "Closing Dr", "Closing Cr",
		}}
		for _, row := range r {
			sheet.AddRow(row.AccountName, row.OpeningDebit, row.OpeningCredit,
				row.PeriodDebit, row.PeriodCredit, row.ClosingDebit, row.ClosingCredit)
		}
		return []export.Sheet{sheet}, nil

	case statement.CashFlow:
		sheet := export.Sheet{Name: "Cash Flow", Headers: []string{"Line", "Amount"}}
		sheet.AddRow("Net Profit", r.OperatingActivities.NetProfit)
		sheet.AddRow("Cash from Customers", r.OperatingActivities.CashFromCustomers)
		sheet.AddRow("Cash to Suppliers", r.OperatingActivities.CashToSuppliers)
		sheet.AddRow("Cash for Expenses", r.OperatingActivities.CashForExpenses)
		sheet.AddRow("Cash Flow from Operations", r.OperatingActivities.CashFlowFromOperations)
		sheet.AddRow("Cash Flow from Investing", r.InvestingActivities.CashFlowFromInvesting)
		sheet.AddRow("Cash Flow from Financing", r.FinancingActivities.CashFlowFromFinancing)
		return []export.Sheet{sheet}, nil

	case []statement.PartyTaxSummary:
		title := "GSTR-1"
		if name == ReportGSTR2 {
			title = "GSTR-2"
		}
		summary := export.Sheet{Name: title, Headers: []string{
			"GSTIN", "Invoices", "Taxable Value", "CGST", "SGST", "IGST", "Invoice Value",
		}}
		invoices := export.Sheet{Name: title + " Invoices", Headers: []string{"GSTIN", "Number", "Date", "Value"}}
		for _, p := range r {
			summary.AddRow(p.GSTIN, p.InvoiceCount, p.TotalTaxableValue, p.TotalCGST, p.TotalSGST, p.TotalIGST, p.TotalInvoiceValue)
			for _, inv := range p.Invoices {
				invoices.AddRow(p.GSTIN, inv.Number, inv.Date.Format(exportDateLayout), inv.Value)
			}
		}
		return []export.Sheet{summary, invoices}, nil

	case []statement.HSNSummaryRow:
		sheet := export.Sheet{Name: "HSN Summary", Headers: []string{
			"HSN", "Description", "Quantity", "Taxable Value", "CGST", "SGST", "IGST", "GST Rate",
		}}
		for _, row := range r {
			sheet.AddRow(row.HSNCode, row.Description, row.TotalQuantity, row.TotalTaxableValue,
				row.TotalCGST, row.TotalSGST, row.TotalIGST, row.GSTRate)
		}
		return []export.Sheet{sheet}, nil

	case statement.GSTR3B:
		sheet := export.Sheet{Name: "GSTR-3B", Headers: []string{"Line", "Amount"}}
		sheet.AddRow("Outward Taxable Supplies", r.OutwardTaxableSupplies)
		sheet.AddRow("Outward CGST", r.OutwardCGST)
		sheet.AddRow("Outward SGST", r.OutwardSGST)
		sheet.AddRow("Outward IGST", r.OutwardIGST)
		sheet.AddRow("ITC Available CGST", r.ITCAvailableCGST)
		sheet.AddRow("ITC Available SGST", r.ITCAvailableSGST)
		sheet.AddRow("ITC Available IGST", r.ITCAvailableIGST)
		return []export.Sheet{sheet}, nil

	case statement.GSTR9:
		sheet := export.Sheet{Name: "GSTR-9", Headers: []string{"Line", "Amount"}}
		sheet.AddRow("Total Taxable Value", r.TotalTaxableValue)
		sheet.AddRow("Total Tax Payable", r.TotalTaxPayable)
		sheet.AddRow("Total ITC Claimed", r.TotalITCClaimed)
		return []export.Sheet{sheet}, nil

	case []statement.TypeTotal:
		sheet := export.Sheet{Name: "Consolidated", Headers: []string{"Type", "Count", "Total Amount"}}
		for _, row := range r {
			sheet.AddRow(row.Type.String(), row.Count, row.TotalAmount)
		}
		return []export.Sheet{sheet}, nil
	}
	return nil, fmt.Errorf("no export layout for report %q", name)
}
