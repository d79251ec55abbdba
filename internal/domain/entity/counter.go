package entity

import (
	"time"

	"github.com/google/uuid"
)

// Counter holds the last number issued for a (tenant, document type) key
type Counter struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	DocType   string    `gorm:"size:32;primaryKey" json:"doc_type"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
