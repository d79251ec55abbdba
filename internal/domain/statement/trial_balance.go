package statement

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account line of the trial balance
type TrialBalanceRow struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountName   string          `json:"account_name"`
	OpeningDebit  decimal.Decimal `json:"opening_debit"`
	OpeningCredit decimal.Decimal `json:"opening_credit"`
	PeriodDebit   decimal.Decimal `json:"period_debit"`
	PeriodCredit  decimal.Decimal `json:"period_credit"`
	ClosingDebit  decimal.Decimal `json:"closing_debit"`
	ClosingCredit decimal.Decimal `json:"closing_credit"`
}

func (r TrialBalanceRow) isZero() bool {
	return r.OpeningDebit.IsZero() && r.OpeningCredit.IsZero() &&
		r.PeriodDebit.IsZero() && r.PeriodCredit.IsZero() &&
		r.ClosingDebit.IsZero() && r.ClosingCredit.IsZero()
}

// BuildTrialBalance produces one row per account with any non-zero figure, ordered by name.
// Period movements come from transactions that reference the account.
func BuildTrialBalance(s *Snapshot, p Period) []TrialBalanceRow {
	type movement struct{ debit, credit decimal.Decimal }
	moves := make(map[uuid.UUID]*movement)

	s.inPeriod(p, func(t *entity.Transaction) {
		if t.AccountID == nil {
			return
		}
		side := ruleFor(t.Type).trial
		if side == trialNone {
			return
		}
		m, ok := moves[*t.AccountID]
		if !ok {
			m = &movement{debit: decimal.Zero, credit: decimal.Zero}
			moves[*t.AccountID] = m
		}
		if side == trialDebit {
			m.debit = m.debit.Add(t.TotalAmount)
		} else {
			m.credit = m.credit.Add(t.TotalAmount)
		}
	})

	rows := make([]TrialBalanceRow, 0)
	if s == nil {
		return rows
	}
	for i := range s.Accounts {
		a := &s.Accounts[i]
		row := TrialBalanceRow{
			AccountID:     a.ID,
			AccountName:   a.Name,
			OpeningDebit:  a.OpeningDebit(),
			OpeningCredit: a.OpeningCredit(),
			PeriodDebit:   decimal.Zero,
			PeriodCredit:  decimal.Zero,
			ClosingDebit:  decimal.Zero,
			ClosingCredit: decimal.Zero,
		}
		if m, ok := moves[a.ID]; ok {
			row.PeriodDebit = m.debit
			row.PeriodCredit = m.credit
		}

		net := row.OpeningDebit.Add(row.PeriodDebit).Sub(row.OpeningCredit.Add(row.PeriodCredit))
		if net.IsPositive() {
			row.ClosingDebit = net
		} else if net.IsNegative() {
			row.ClosingCredit = net.Neg()
		}

		if !row.isZero() {
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AccountName != rows[j].AccountName {
			return rows[i].AccountName < rows[j].AccountName
		}
		return rows[i].AccountID.String() < rows[j].AccountID.String()
	})
	return rows
}
