package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a master ledger account with an opening balance
type Account struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_tenant_name,priority:1" json:"tenant_id"`
	Name          string           `gorm:"size:255;not null;uniqueIndex:idx_accounts_tenant_name,priority:2" json:"name"`
	Alias         *string          `gorm:"size:255" json:"alias,omitempty"`
	Group         *string          `gorm:"column:account_group;size:100" json:"group,omitempty"`
	Type          enum.AccountType `gorm:"size:32;not null;index" json:"type"`
	Prefix        *string          `gorm:"size:20" json:"prefix,omitempty"`
	GSTIN         *string          `gorm:"column:gstin;size:15" json:"gstin,omitempty"`
	OpeningAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"opening_amount"`
	OpeningSide   enum.BalanceSide `gorm:"size:2;not null;default:Dr" json:"opening_side"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.OpeningSide == "" {
		a.OpeningSide = enum.BalanceSideDebit
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// OpeningDebit and OpeningCredit split the opening balance by side
func (a *Account) OpeningDebit() decimal.Decimal {
	if a.OpeningSide == enum.BalanceSideDebit {
		return a.OpeningAmount
	}
	return decimal.Zero
}

func (a *Account) OpeningCredit() decimal.Decimal {
	if a.OpeningSide == enum.BalanceSideCredit {
		return a.OpeningAmount
	}
	return decimal.Zero
}
