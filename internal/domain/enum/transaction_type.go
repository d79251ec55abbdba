package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionType is the closed set of ledger entry kinds
type TransactionType string

const (
	TransactionTypeSale              TransactionType = "sale"
	TransactionTypePurchase          TransactionType = "purchase"
	TransactionTypeSaleReturn        TransactionType = "saleReturn"
	TransactionTypePurchaseReturn    TransactionType = "purchaseReturn"
	TransactionTypeEstimate          TransactionType = "estimate"
	TransactionTypeSaleOrder         TransactionType = "saleOrder"
	TransactionTypePurchaseOrder     TransactionType = "purchaseOrder"
	TransactionTypePaymentIn         TransactionType = "paymentIn"
	TransactionTypePaymentOut        TransactionType = "paymentOut"
	TransactionTypeExpense           TransactionType = "expense"
	TransactionTypeAssetPurchase     TransactionType = "asset_purchase"
	TransactionTypeAssetSale         TransactionType = "asset_sale"
	TransactionTypeLoanIn            TransactionType = "loan_in"
	TransactionTypeLoanOut           TransactionType = "loan_out"
	TransactionTypeCapitalIntroduced TransactionType = "capital_introduced"
	TransactionTypeDrawings          TransactionType = "drawings"
)

var transactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypePurchase,
	TransactionTypeSaleReturn,
	TransactionTypePurchaseReturn,
	TransactionTypeEstimate,
	TransactionTypeSaleOrder,
	TransactionTypePurchaseOrder,
	TransactionTypePaymentIn,
	TransactionTypePaymentOut,
	TransactionTypeExpense,
	TransactionTypeAssetPurchase,
	TransactionTypeAssetSale,
	TransactionTypeLoanIn,
	TransactionTypeLoanOut,
	TransactionTypeCapitalIntroduced,
	TransactionTypeDrawings,
}

// TransactionTypes returns every known type in declaration order
func TransactionTypes() []TransactionType {
	out := make([]TransactionType, len(transactionTypes))
	copy(out, transactionTypes)
	return out
}

// ParseTransactionType returns an error for anything outside the closed set
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

func (t TransactionType) Valid() bool {
	for _, known := range transactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StockDirection is the sign applied to line quantities when the entry is committed:
// -1 for sale and purchaseReturn, +1 for every other type.
func (t TransactionType) StockDirection() int {
	switch t {
	case TransactionTypeSale, TransactionTypePurchaseReturn:
		return -1
	case TransactionTypePurchase, TransactionTypeSaleReturn,
		TransactionTypeEstimate, TransactionTypeSaleOrder, TransactionTypePurchaseOrder,
		TransactionTypePaymentIn, TransactionTypePaymentOut, TransactionTypeExpense,
		TransactionTypeAssetPurchase, TransactionTypeAssetSale,
		TransactionTypeLoanIn, TransactionTypeLoanOut,
		TransactionTypeCapitalIntroduced, TransactionTypeDrawings:
		return 1
	}
	return 0
}

// Convertible reports whether an entry of this type can be converted into an invoice
func (t TransactionType) Convertible() bool {
	switch t {
	case TransactionTypeEstimate, TransactionTypeSaleOrder, TransactionTypePurchaseOrder:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = TransactionType(str)
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(string(v))
	case nil:
		*t = ""
	default:
		return fmt.Errorf("cannot scan %T into TransactionType", value)
	}
	return nil
}
