package statement

import (
	"sort"

	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TypeTotal is one row of the consolidated report
type TypeTotal struct {
	Type        enum.TransactionType `json:"type"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Count       int                  `json:"count"`
}

// BuildConsolidated totals every transaction by type, all time
func BuildConsolidated(s *Snapshot) []TypeTotal {
	totals := make(map[enum.TransactionType]*TypeTotal)
	if s != nil {
		for i := range s.Transactions {
			t := &s.Transactions[i]
			row, ok := totals[t.Type]
			if !ok {
				row = &TypeTotal{Type: t.Type, TotalAmount: decimal.Zero}
				totals[t.Type] = row
			}
			row.TotalAmount = row.TotalAmount.Add(t.TotalAmount)
			row.Count++
		}
	}

	out := make([]TypeTotal, 0, len(totals))
	for _, row := range totals {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
