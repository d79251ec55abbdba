package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a ledger entry. Number is unique per (tenant, type).
type Transaction struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_transactions_tenant_type_number,priority:1" json:"tenant_id"`
	Type            enum.TransactionType   `gorm:"size:32;not null;uniqueIndex:idx_transactions_tenant_type_number,priority:2" json:"type"`
	Number          string                 `gorm:"size:64;not null;uniqueIndex:idx_transactions_tenant_type_number,priority:3" json:"number"`
	Status          enum.TransactionStatus `gorm:"size:16;not null;default:Draft" json:"status"`
	ConvertedFromID *uuid.UUID             `gorm:"type:uuid;index" json:"converted_from_id,omitempty"`
	PartyID         *uuid.UUID             `gorm:"type:uuid;index" json:"party_id,omitempty"`
	PartyGSTIN      string                 `gorm:"column:party_gstin;size:15" json:"party_gstin,omitempty"`
	AccountID       *uuid.UUID             `gorm:"type:uuid;index" json:"account_id,omitempty"`
	Date            time.Time              `gorm:"not null;index" json:"date"`
	Subtotal        decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	Discount        decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0" json:"discount"`
	TotalAmount     decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	AmountPaid      decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0" json:"amount_paid"`
	BalanceDue      decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0" json:"balance_due"`
	Notes           *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       *uuid.UUID             `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`

	// Relationships
	Party *Party            `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	Lines []TransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"lines"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = enum.TransactionStatusDraft
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TaxableTotal sums the taxable value of every line
func (t *Transaction) TaxableTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		sum = sum.Add(l.TaxableValue)
	}
	return sum
}

// TaxTotal sums cgst, sgst and igst of every line
func (t *Transaction) TaxTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		sum = sum.Add(l.TaxAmount())
	}
	return sum
}

// HasTaxBreakdown reports whether any line carries a taxable value or tax
func (t *Transaction) HasTaxBreakdown() bool {
	for i := range t.Lines {
		l := &t.Lines[i]
		if !l.TaxableValue.IsZero() || !l.TaxAmount().IsZero() {
			return true
		}
	}
	return false
}

// TransactionLine is one item row of a transaction
type TransactionLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Position      int             `gorm:"not null;default:0" json:"position"`
	ItemName      string          `gorm:"size:255;not null" json:"item_name"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"quantity"`
	Rate          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"rate"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	HSNCode       string          `gorm:"column:hsn_code;size:16" json:"hsn_code,omitempty"`
	TaxableValue  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"taxable_value"`
	CGST          decimal.Decimal `gorm:"column:cgst;type:decimal(15,2);not null;default:0" json:"cgst"`
	SGST          decimal.Decimal `gorm:"column:sgst;type:decimal(15,2);not null;default:0" json:"sgst"`
	IGST          decimal.Decimal `gorm:"column:igst;type:decimal(15,2);not null;default:0" json:"igst"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *TransactionLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionLine model
func (TransactionLine) TableName() string {
	return "transaction_lines"
}

// TaxAmount is cgst + sgst + igst
func (l *TransactionLine) TaxAmount() decimal.Decimal {
	return l.CGST.Add(l.SGST).Add(l.IGST)
}
