package reconciliation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BankLine is one movement on either the books or the bank statement.
// Exactly one of Debit and Credit is expected to be non-zero.
type BankLine struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

func (l BankLine) isCredit() bool {
	return l.Credit.GreaterThan(l.Debit)
}

func (l BankLine) amount() decimal.Decimal {
	if l.isCredit() {
		return l.Credit
	}
	return l.Debit
}

// BankMatch pairs a book line with the statement line that settled it
type BankMatch struct {
	Book      BankLine `json:"book"`
	Statement BankLine `json:"statement"`
}

type BankResult struct {
	Matched            []BankMatch `json:"matched"`
	UnmatchedBook      []BankLine  `json:"unmatched_book"`
	UnmatchedStatement []BankLine  `json:"unmatched_statement"`
}

func sortLines(lines []BankLine) []BankLine {
	out := make([]BankLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if c := out[i].amount().Cmp(out[j].amount()); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// ReconcileBank pairs each book line with the first unused statement line on the same calendar
// day, on the same side, whose amount is within Tolerance. Lines are visited in date order.
func ReconcileBank(book, statement []BankLine) *BankResult {
	books := sortLines(book)
	stmts := sortLines(statement)
	used := make([]bool, len(stmts))

	result := &BankResult{
		Matched:            []BankMatch{},
		UnmatchedBook:      []BankLine{},
		UnmatchedStatement: []BankLine{},
	}

	for _, b := range books {
		found := -1
		for i, s := range stmts {
			if used[i] || !sameDay(b.Date, s.Date) || b.isCredit() != s.isCredit() {
				continue
			}
			if b.amount().Sub(s.amount()).Abs().LessThanOrEqual(Tolerance) {
				found = i
				break
			}
		}
		if found < 0 {
			result.UnmatchedBook = append(result.UnmatchedBook, b)
			continue
		}
		used[found] = true
		result.Matched = append(result.Matched, BankMatch{Book: b, Statement: stmts[found]})
	}

	for i, s := range stmts {
		if !used[i] {
			result.UnmatchedStatement = append(result.UnmatchedStatement, s)
		}
	}
	return result
}
