package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents how a sale was paid
type PaymentStatus string

const (
	PaymentStatusCash   PaymentStatus = "cash"
	PaymentStatusCard   PaymentStatus = "card"
	PaymentStatusCredit PaymentStatus = "credit"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = PaymentStatus(str)
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(string(v))
	}
	return nil
}
