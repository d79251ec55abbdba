package statement

import (
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProfitAndLoss is the income statement for a period
type ProfitAndLoss struct {
	Revenue         decimal.Decimal `json:"revenue"`
	CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	Expenses        decimal.Decimal `json:"expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
}

// BuildProfitAndLoss computes revenue = sales - sale returns, cogs = purchases - purchase returns,
// gross = revenue - cogs and net = gross - expenses.
func BuildProfitAndLoss(s *Snapshot, p Period) ProfitAndLoss {
	revenue, cogs, expenses := decimal.Zero, decimal.Zero, decimal.Zero

	s.inPeriod(p, func(t *entity.Transaction) {
		r := ruleFor(t.Type)
		if r.revenue != 0 {
			revenue = revenue.Add(t.TotalAmount.Mul(decimal.NewFromInt(int64(r.revenue))))
		}
		if r.cogs != 0 {
			cogs = cogs.Add(t.TotalAmount.Mul(decimal.NewFromInt(int64(r.cogs))))
		}
		if r.expense {
			expenses = expenses.Add(t.TotalAmount)
		}
	})

	gross := revenue.Sub(cogs)
	return ProfitAndLoss{
		Revenue:         revenue,
		CostOfGoodsSold: cogs,
		GrossProfit:     gross,
		Expenses:        expenses,
		NetProfit:       gross.Sub(expenses),
	}
}
