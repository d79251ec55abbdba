package statement

import (
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
)

// Snapshot is the ledger state a report is computed from
type Snapshot struct {
	Transactions []entity.Transaction
	Accounts     []entity.Account
	Items        []entity.Item
}

type trialSide int

const (
	trialNone trialSide = iota
	trialDebit
	trialCredit
)

// typeRule says how one transaction type feeds each report.
// Signs are applied to totalAmount (revenue, cogs), amountPaid (cash, investing, financing).
type typeRule struct {
	revenue    int
	cogs       int
	expense    bool
	cash       int
	receivable bool
	payable    bool
	trial      trialSide
	investing  int
	financing  int
}

// Every enum.TransactionType must have an entry; the test suite enforces it.
var typeRules = map[enum.TransactionType]typeRule{
	enum.TransactionTypeSale:              {revenue: 1, cash: 1, receivable: true, trial: trialDebit},
	enum.TransactionTypePurchase:          {cogs: 1, cash: -1, payable: true, trial: trialCredit},
	enum.TransactionTypeSaleReturn:        {revenue: -1, receivable: true, trial: trialCredit},
	enum.TransactionTypePurchaseReturn:    {cogs: -1, payable: true, trial: trialDebit},
	enum.TransactionTypeEstimate:          {},
	enum.TransactionTypeSaleOrder:         {},
	enum.TransactionTypePurchaseOrder:     {},
	enum.TransactionTypePaymentIn:         {cash: 1, trial: trialCredit},
	enum.TransactionTypePaymentOut:        {cash: -1, trial: trialDebit},
	enum.TransactionTypeExpense:           {expense: true, cash: -1, trial: trialCredit},
	enum.TransactionTypeAssetPurchase:     {investing: -1},
	enum.TransactionTypeAssetSale:         {investing: 1},
	enum.TransactionTypeLoanIn:            {financing: 1},
	enum.TransactionTypeLoanOut:           {financing: -1},
	enum.TransactionTypeCapitalIntroduced: {financing: 1},
	enum.TransactionTypeDrawings:          {financing: -1},
}

func ruleFor(t enum.TransactionType) typeRule {
	return typeRules[t]
}

// inPeriod calls fn for every transaction dated within p
func (s *Snapshot) inPeriod(p Period, fn func(t *entity.Transaction)) {
	if s == nil {
		return
	}
	for i := range s.Transactions {
		t := &s.Transactions[i]
		if p.Contains(t.Date) {
			fn(t)
		}
	}
}
