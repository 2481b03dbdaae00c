package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CreditStatus represents the repayment state of a credit sale
type CreditStatus string

const (
	CreditStatusPending CreditStatus = "pending"
	CreditStatusPartial CreditStatus = "partial"
	CreditStatusPaid    CreditStatus = "paid"
	CreditStatusOverdue CreditStatus = "overdue"
)

func (s CreditStatus) String() string {
	return string(s)
}

func (s CreditStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = CreditStatus(str)
	return nil
}

func (s CreditStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *CreditStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CreditStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = CreditStatus(v)
	case []byte:
		*s = CreditStatus(string(v))
	}
	return nil
}
