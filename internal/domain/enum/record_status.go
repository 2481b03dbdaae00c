package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RecordStatus represents the status of a daily cash record
type RecordStatus int

const (
	RecordStatusPending    RecordStatus = 0
	RecordStatusReconciled RecordStatus = 1
	RecordStatusClosed     RecordStatus = 2
)

func (s RecordStatus) String() string {
	names := [...]string{"Pending", "Reconciled", "Closed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s RecordStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RecordStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = RecordStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = RecordStatusPending
	case "Reconciled":
		*s = RecordStatusReconciled
	case "Closed":
		*s = RecordStatusClosed
	}
	return nil
}

func (s RecordStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RecordStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RecordStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = RecordStatus(v)
	case int:
		*s = RecordStatus(v)
	}
	return nil
}
