package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DeliveryStatus represents the status of a fuel delivery
type DeliveryStatus int

const (
	DeliveryStatusPending  DeliveryStatus = 0
	DeliveryStatusReceived DeliveryStatus = 1
)

func (s DeliveryStatus) String() string {
	names := [...]string{"Pending", "Received"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s DeliveryStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DeliveryStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DeliveryStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = DeliveryStatusPending
	case "Received":
		*s = DeliveryStatusReceived
	}
	return nil
}

func (s DeliveryStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DeliveryStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DeliveryStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DeliveryStatus(v)
	case int:
		*s = DeliveryStatus(v)
	}
	return nil
}
