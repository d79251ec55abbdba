package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PartyType represents the role of a counterparty
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

func (t PartyType) Valid() bool {
	return t == PartyTypeCustomer || t == PartyTypeSupplier
}

func (t PartyType) String() string {
	return string(t)
}

func (t PartyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PartyType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PartyType(str)
	return nil
}

func (t PartyType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PartyType) Scan(value interface{}) error {
	if value == nil {
		*t = PartyTypeCustomer
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PartyType(v)
	case []byte:
		*t = PartyType(string(v))
	}
	return nil
}
