package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType represents the business reason for a credit ledger entry
type TransactionType string

const (
	TransactionTypeSale       TransactionType = "sale"
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

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
	if value == nil {
		*t = TransactionTypeSale
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(string(v))
	}
	return nil
}
