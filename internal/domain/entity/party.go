package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Party represents a customer or supplier
type Party struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_parties_tenant_name,priority:1" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_parties_tenant_name,priority:2" json:"name"`
	Type      enum.PartyType `gorm:"size:16;not null" json:"type"`
	GSTIN     *string        `gorm:"column:gstin;size:15" json:"gstin,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	State     *string        `gorm:"size:100" json:"state,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new party
func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Party model
func (Party) TableName() string {
	return "parties"
}

// TaxID returns the party's GSTIN or an empty string
func (p *Party) TaxID() string {
	if p == nil || p.GSTIN == nil {
		return ""
	}
	return *p.GSTIN
}
