package statement

import (
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BalanceSheet as of a date. The accounting identity is not asserted; an imbalance
// is reported as-is.
type BalanceSheet struct {
	CashAndBank        decimal.Decimal `json:"cash_and_bank"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	OwnerCapital       decimal.Decimal `json:"owner_capital"`
	NetProfit          decimal.Decimal `json:"net_profit"`
}

// BuildBalanceSheet aggregates every transaction up to asOf (nil means all time).
// Inventory is valued from current item state and is not date filtered.
func BuildBalanceSheet(s *Snapshot, asOf *time.Time) BalanceSheet {
	p := Period{End: asOf}
	cash, receivable, payable := decimal.Zero, decimal.Zero, decimal.Zero

	s.inPeriod(p, func(t *entity.Transaction) {
		r := ruleFor(t.Type)
		switch {
		case r.cash > 0:
			cash = cash.Add(t.AmountPaid)
		case r.cash < 0:
			cash = cash.Sub(t.AmountPaid)
		}
		if r.receivable {
			receivable = receivable.Add(t.BalanceDue)
		}
		if r.payable {
			payable = payable.Add(t.BalanceDue)
		}
	})

	inventory := decimal.Zero
	capital := decimal.Zero
	if s != nil {
		for i := range s.Items {
			inventory = inventory.Add(s.Items[i].StockValue())
		}
		for i := range s.Accounts {
			a := &s.Accounts[i]
			if a.Type != enum.AccountTypeCapital {
				continue
			}
			capital = capital.Add(a.OpeningCredit()).Sub(a.OpeningDebit())
		}
	}

	return BalanceSheet{
		CashAndBank:        cash,
		AccountsReceivable: receivable,
		InventoryValue:     inventory,
		AccountsPayable:    payable,
		OwnerCapital:       capital,
		NetProfit:          BuildProfitAndLoss(s, p).NetProfit,
	}
}
