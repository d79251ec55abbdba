// Package reconciliation diffs ledger entries against externally supplied records.
// Nothing here touches storage.
package reconciliation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tolerance is the rounding difference under which two totals are considered equal
var Tolerance = decimal.New(1, -2)

// ErrDuplicateExternalKey is returned when the external set repeats a (counterparty, document) key
var ErrDuplicateExternalKey = errors.New("duplicate external invoice key")

// Key identifies an invoice across both record sets
type Key struct {
	CounterpartyID string `json:"counterparty_id"`
	DocumentNumber string `json:"document_number"`
}

func newKey(counterparty, number string) Key {
	return Key{
		CounterpartyID: strings.ToUpper(strings.TrimSpace(counterparty)),
		DocumentNumber: strings.TrimSpace(number),
	}
}

func (k Key) less(o Key) bool {
	if k.CounterpartyID != o.CounterpartyID {
		return k.CounterpartyID < o.CounterpartyID
	}
	return k.DocumentNumber < o.DocumentNumber
}

// BookInvoice is a ledger entry reduced to what tax reconciliation needs
type BookInvoice struct {
	TransactionID  uuid.UUID
	CounterpartyID string
	DocumentNumber string
	Date           time.Time
	TaxableValue   decimal.Decimal
	TotalTax       decimal.Decimal
}

// Total is taxable value plus tax
func (b BookInvoice) Total() decimal.Decimal {
	return b.TaxableValue.Add(b.TotalTax)
}

// ExternalInvoice is one normalized record from the tax authority feed
type ExternalInvoice struct {
	CounterpartyID string          `json:"counterparty_id"`
	DocumentNumber string          `json:"document_number"`
	Date           time.Time       `json:"date"`
	TaxableValue   decimal.Decimal `json:"taxable_value"`
	TotalTax       decimal.Decimal `json:"total_tax"`
}

// Total is taxable value plus tax
func (e ExternalInvoice) Total() decimal.Decimal {
	return e.TaxableValue.Add(e.TotalTax)
}

// TaxEntry is one classified invoice. BookTotal or ExternalTotal is nil when that side is absent.
type TaxEntry struct {
	Key
	TransactionID *uuid.UUID       `json:"transaction_id,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	BookTotal     *decimal.Decimal `json:"book_total,omitempty"`
	ExternalTotal *decimal.Decimal `json:"external_total,omitempty"`
	Difference    *decimal.Decimal `json:"difference,omitempty"`
}

// TaxResult partitions the union of keys of both sets
type TaxResult struct {
	Matched             []TaxEntry `json:"matched"`
	Mismatched          []TaxEntry `json:"mismatched"`
	MissingFromBooks    []TaxEntry `json:"missing_from_books"`
	MissingFromExternal []TaxEntry `json:"missing_from_external"`
}

// ReconcileTax classifies every book invoice against the external set: matched when totals are
// within Tolerance, mismatched otherwise, missingFromExternal when absent. External
// records never consumed are missingFromBooks.
func ReconcileTax(book []BookInvoice, external []ExternalInvoice) (*TaxResult, error) {
	lookup := make(map[Key]ExternalInvoice, len(external))
	for _, e := range external {
		k := newKey(e.CounterpartyID, e.DocumentNumber)
		if _, dup := lookup[k]; dup {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateExternalKey, k.CounterpartyID, k.DocumentNumber)
		}
		lookup[k] = e
	}

	result := &TaxResult{
		Matched:             []TaxEntry{},
		Mismatched:          []TaxEntry{},
		MissingFromBooks:    []TaxEntry{},
		MissingFromExternal: []TaxEntry{},
	}

	for _, b := range book {
		k := newKey(b.CounterpartyID, b.DocumentNumber)
		id := b.TransactionID
		date := b.Date
		bookTotal := b.Total()
		entry := TaxEntry{Key: k, TransactionID: &id, Date: &date, BookTotal: &bookTotal}

		e, ok := lookup[k]
		if !ok {
			result.MissingFromExternal = append(result.MissingFromExternal, entry)
			continue
		}
		delete(lookup, k)

		extTotal := e.Total()
		diff := bookTotal.Sub(extTotal)
		entry.ExternalTotal = &extTotal
		if diff.Abs().LessThanOrEqual(Tolerance) {
			result.Matched = append(result.Matched, entry)
			continue
		}
		entry.Difference = &diff
		result.Mismatched = append(result.Mismatched, entry)
	}

	for k, e := range lookup {
		extTotal := e.Total()
		entry := TaxEntry{Key: k, ExternalTotal: &extTotal}
		if !e.Date.IsZero() {
			date := e.Date
			entry.Date = &date
		}
		result.MissingFromBooks = append(result.MissingFromBooks, entry)
	}

	for _, list := range [][]TaxEntry{result.Matched, result.Mismatched, result.MissingFromBooks, result.MissingFromExternal} {
		sort.Slice(list, func(i, j int) bool { return list[i].Key.less(list[j].Key) })
	}
	return result, nil
}
