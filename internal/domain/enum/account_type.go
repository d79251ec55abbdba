package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AccountType tags a master account
type AccountType string

const (
	AccountTypeSaleSeries      AccountType = "sale_series"
	AccountTypePurchaseSeries  AccountType = "purchase_series"
	AccountTypeExpenseCategory AccountType = "expense_category"
	AccountTypeCapital         AccountType = "capital"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSaleSeries, AccountTypePurchaseSeries, AccountTypeExpenseCategory, AccountTypeCapital:
		return true
	}
	return false
}

func (t AccountType) String() string {
	return string(t)
}

func (t AccountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *AccountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = AccountType(str)
	return nil
}

func (t AccountType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *AccountType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = AccountType(v)
	case []byte:
		*t = AccountType(string(v))
	}
	return nil
}

// BalanceSide is the side an opening balance sits on
type BalanceSide string

const (
	BalanceSideDebit  BalanceSide = "Dr"
	BalanceSideCredit BalanceSide = "Cr"
)

func (s BalanceSide) Valid() bool {
	return s == BalanceSideDebit || s == BalanceSideCredit
}

func (s BalanceSide) Value() (driver.Value, error) {
	if s == "" {
		return string(BalanceSideDebit), nil
	}
	return string(s), nil
}

func (s *BalanceSide) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = BalanceSide(v)
	case []byte:
		*s = BalanceSide(string(v))
	case nil:
		*s = BalanceSideDebit
	}
	return nil
}
