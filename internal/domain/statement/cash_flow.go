package statement

import (
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type OperatingActivities struct {
	NetProfit              decimal.Decimal `json:"net_profit"`
	CashFromCustomers      decimal.Decimal `json:"cash_from_customers"`
	CashToSuppliers        decimal.Decimal `json:"cash_to_suppliers"`
	CashForExpenses        decimal.Decimal `json:"cash_for_expenses"`
	CashFlowFromOperations decimal.Decimal `json:"cash_flow_from_operations"`
}

type InvestingActivities struct {
	CashFlowFromInvesting decimal.Decimal `json:"cash_flow_from_investing"`
}

type FinancingActivities struct {
	CashFlowFromFinancing decimal.Decimal `json:"cash_flow_from_financing"`
}

// CashFlow is the statement of cash flows for a period
type CashFlow struct {
	OperatingActivities OperatingActivities `json:"operating_activities"`
	InvestingActivities InvestingActivities `json:"investing_activities"`
	FinancingActivities FinancingActivities `json:"financing_activities"`
}

// BuildCashFlow works on amountPaid: receipts from sales and paymentIn, payments for
// purchases, paymentOut and expenses, signed asset and financing movements.
func BuildCashFlow(s *Snapshot, p Period) CashFlow {
	customers, suppliers, expenses := decimal.Zero, decimal.Zero, decimal.Zero
	investing, financing := decimal.Zero, decimal.Zero

	s.inPeriod(p, func(t *entity.Transaction) {
		r := ruleFor(t.Type)
		switch {
		case r.cash > 0:
			customers = customers.Add(t.AmountPaid)
		case r.cash < 0 && r.expense:
			expenses = expenses.Add(t.AmountPaid)
		case r.cash < 0:
			suppliers = suppliers.Add(t.AmountPaid)
		}
		if r.investing != 0 {
			investing = investing.Add(t.AmountPaid.Mul(decimal.NewFromInt(int64(r.investing))))
		}
		if r.financing != 0 {
			financing = financing.Add(t.AmountPaid.Mul(decimal.NewFromInt(int64(r.financing))))
		}
	})

	return CashFlow{
		OperatingActivities: OperatingActivities{
			NetProfit:              BuildProfitAndLoss(s, p).NetProfit,
			CashFromCustomers:      customers,
			CashToSuppliers:        suppliers,
			CashForExpenses:        expenses,
			CashFlowFromOperations: customers.Sub(suppliers).Sub(expenses),
		},
		InvestingActivities: InvestingActivities{CashFlowFromInvesting: investing},
		FinancingActivities: FinancingActivities{CashFlowFromFinancing: financing},
	}
}
