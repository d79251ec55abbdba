package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TransactionLineRequest is one item row of a commit request
type TransactionLineRequest struct {
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	HSNCode      string          `json:"hsn_code"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
}

// CommitTransactionRequest represents a transaction commit request.
// Field rules are enforced by the ledger service so every violation is reported at once.
type CommitTransactionRequest struct {
	Type        enum.TransactionType     `json:"type"`
	Number      string                   `json:"number"`
	Status      enum.TransactionStatus   `json:"status"`
	PartyID     *uuid.UUID               `json:"party_id"`
	AccountID   *uuid.UUID               `json:"account_id"`
	Date        string                   `json:"date"`
	Subtotal    decimal.Decimal          `json:"subtotal"`
	Discount    decimal.Decimal          `json:"discount"`
	TotalAmount *decimal.Decimal         `json:"total_amount"`
	AmountPaid  decimal.Decimal          `json:"amount_paid"`
	BalanceDue  *decimal.Decimal         `json:"balance_due"`
	Notes       *string                  `json:"notes"`
	Lines       []TransactionLineRequest `json:"lines"`
}

// UpdateTransactionRequest represents a header-only transaction update
type UpdateTransactionRequest struct {
	Number      *string                 `json:"number"`
	Status      *enum.TransactionStatus `json:"status"`
	PartyID     *uuid.UUID              `json:"party_id"`
	AccountID   *uuid.UUID              `json:"account_id"`
	Date        *string                 `json:"date"`
	Subtotal    *decimal.Decimal        `json:"subtotal"`
	Discount    *decimal.Decimal        `json:"discount"`
	TotalAmount *decimal.Decimal        `json:"total_amount"`
	AmountPaid  *decimal.Decimal        `json:"amount_paid"`
	BalanceDue  *decimal.Decimal        `json:"balance_due"`
	Notes       *string                 `json:"notes"`
}

// ConvertTransactionRequest names the invoice an estimate or order becomes
type ConvertTransactionRequest struct {
	Number string `json:"number" binding:"required,max=64"`
	Date   string `json:"date"`
}

// TransactionFilterRequest represents transaction filter parameters
type TransactionFilterRequest struct {
	Type      string `form:"type"`
	PartyID   string `form:"party_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}
