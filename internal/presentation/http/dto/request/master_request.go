package request

import (
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AccountRequest represents an account create or replace request
type AccountRequest struct {
	Name          string           `json:"name" binding:"required,max=255"`
	Alias         *string          `json:"alias" binding:"omitempty,max=255"`
	Group         *string          `json:"group" binding:"omitempty,max=100"`
	Type          enum.AccountType `json:"type" binding:"required"`
	Prefix        *string          `json:"prefix" binding:"omitempty,max=20"`
	GSTIN         *string          `json:"gstin"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	OpeningSide   enum.BalanceSide `json:"opening_side"`
	IsActive      *bool            `json:"is_active"`
}

// AccountFilterRequest represents account filter parameters
type AccountFilterRequest struct {
	Search  string `form:"search"`
	Type    string `form:"type"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// PartyRequest represents a party create or replace request
type PartyRequest struct {
	Name    string         `json:"name" binding:"required,max=255"`
	Type    enum.PartyType `json:"type"`
	GSTIN   *string        `json:"gstin"`
	Email   *string        `json:"email"`
	Phone   *string        `json:"phone" binding:"omitempty,max=50"`
	Address *string        `json:"address"`
	State   *string        `json:"state" binding:"omitempty,max=100"`
}

// PartyFilterRequest represents party filter parameters
type PartyFilterRequest struct {
	Search  string `form:"search"`
	Type    string `form:"type"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	HSNCode       string          `json:"hsn_code" binding:"omitempty,max=16"`
}

// UpdateItemRequest represents an item update request. Stock is not editable.
type UpdateItemRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	HSNCode       *string          `json:"hsn_code" binding:"omitempty,max=16"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
