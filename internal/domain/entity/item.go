package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a stock-keeping unit. Stock only moves through committed transactions.
type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_items_tenant_name,priority:1" json:"tenant_id"`
	Name          string          `gorm:"size:255;not null;uniqueIndex:idx_items_tenant_name,priority:2" json:"name"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"sale_price"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"purchase_price"`
	Stock         decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"stock"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	HSNCode       string          `gorm:"column:hsn_code;size:16" json:"hsn_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// StockValue is stock valued at purchase price
func (i *Item) StockValue() decimal.Decimal {
	return i.Stock.Mul(i.PurchasePrice)
}
