// Package pagination holds page and keyset paging parameters shared by the list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination describes one page of an offset-paged listing
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the first page at the default size
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps page to >= 1 and per_page to 1..100
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = clampLimit(p.PerPage)
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

func clampLimit(n int) int {
	if n < 1 {
		return defaultPerPage
	}
	if n > maxPerPage {
		return maxPerPage
	}
	return n
}

// CursorDirection is the direction to walk from a cursor
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is a keyset position in ledger order: transaction date, then id
type Cursor struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

// CursorParams represents input parameters for cursor-based pagination
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// CursorPagination represents cursor-based pagination response metadata
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult represents a cursor-paginated result with items
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// DefaultCursorParams starts at the oldest entry
func DefaultCursorParams() *CursorParams {
	return &CursorParams{Direction: CursorDirectionNext, Limit: defaultPerPage}
}

// Validate clamps the limit and defaults the direction to next
func (c *CursorParams) Validate() {
	c.Limit = clampLimit(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// Backward reports whether the page walks toward older entries
func (c *CursorParams) Backward() bool {
	return c.Direction == CursorDirectionPrev
}

// DecodeCursor returns nil for an empty cursor
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}
	if cursor.ID == "" {
		return nil, fmt.Errorf("invalid cursor data: missing id")
	}
	return &cursor, nil
}

// EncodeCursor encodes a ledger position
func EncodeCursor(id string, date time.Time) string {
	data, _ := json.Marshal(Cursor{ID: id, Date: date.UTC()})
	return base64.URLEncoding.EncodeToString(data)
}

// NewCursorPagination trims items fetched with limit+1 back to limit and builds the
// cursors. items must already be in ascending ledger order.
func NewCursorPagination[T any](items []T, params *CursorParams, key func(T) (string, time.Time)) (*CursorPagination, []T) {
	hasMore := len(items) > params.Limit
	if hasMore {
		if params.Backward() {
			items = items[len(items)-params.Limit:]
		} else {
			items = items[:params.Limit]
		}
	}

	pag := &CursorPagination{Limit: params.Limit}
	if params.Backward() {
		pag.HasPrev = hasMore
		pag.HasNext = params.Cursor != ""
	} else {
		pag.HasNext = hasMore
		pag.HasPrev = params.Cursor != ""
	}

	if len(items) > 0 {
		id, date := key(items[len(items)-1])
		next := EncodeCursor(id, date)
		pag.NextCursor = &next

		id, date = key(items[0])
		prev := EncodeCursor(id, date)
		pag.PrevCursor = &prev
	}

	return pag, items
}

// NewCursorPaginatedResult creates a new cursor-paginated result
func NewCursorPaginatedResult[T any](items []T, pagination *CursorPagination) *CursorPaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &CursorPaginatedResult[T]{Items: items, Pagination: pagination}
}
