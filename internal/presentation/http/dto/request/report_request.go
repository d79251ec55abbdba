package request

import "github.com/shopspring/decimal"

// ReportQueryRequest carries every report parameter; each report reads the ones it needs
type ReportQueryRequest struct {
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	AsOf          string `form:"as_of"`
	Month         string `form:"month"`
	Year          string `form:"year"`
	FinancialYear string `form:"financial_year"`
}

// ExternalInvoiceRequest is one record of a GSTR-2A download
type ExternalInvoiceRequest struct {
	GSTIN          string          `json:"gstin" binding:"required"`
	DocumentNumber string          `json:"document_number" binding:"required"`
	Date           string          `json:"date"`
	TaxableValue   decimal.Decimal `json:"taxable_value"`
	TotalTax       decimal.Decimal `json:"total_tax"`
}

// GSTR2AReconcileRequest compares a month of purchases with the supplier-reported invoices
type GSTR2AReconcileRequest struct {
	Month    int                      `json:"month" binding:"required,min=1,max=12"`
	Year     int                      `json:"year" binding:"required"`
	Invoices []ExternalInvoiceRequest `json:"invoices" binding:"dive"`
}

// BankStatementLineRequest is one line of an uploaded bank statement
type BankStatementLineRequest struct {
	ID          string          `json:"id"`
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// BankReconcileRequest compares book cash movements in a period with a bank statement
type BankReconcileRequest struct {
	StartDate string                     `json:"start_date"`
	EndDate   string                     `json:"end_date"`
	Lines     []BankStatementLineRequest `json:"lines" binding:"dive"`
}
