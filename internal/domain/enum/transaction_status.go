package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionStatus tracks the document workflow of estimates and invoices
type TransactionStatus string

const (
	TransactionStatusDraft    TransactionStatus = "Draft"
	TransactionStatusSent     TransactionStatus = "Sent"
	TransactionStatusViewed   TransactionStatus = "Viewed"
	TransactionStatusAccepted TransactionStatus = "Accepted"
	TransactionStatusRejected TransactionStatus = "Rejected"
	TransactionStatusInvoiced TransactionStatus = "Invoiced"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusDraft, TransactionStatusSent, TransactionStatusViewed,
		TransactionStatusAccepted, TransactionStatusRejected, TransactionStatusInvoiced:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = TransactionStatus(str)
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	if s == "" {
		return string(TransactionStatusDraft), nil
	}
	return string(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = TransactionStatus(v)
	case []byte:
		*s = TransactionStatus(string(v))
	}
	return nil
}
