package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TankStatus represents the operational status of a storage tank
type TankStatus int

const (
	TankStatusActive      TankStatus = 0
	TankStatusMaintenance TankStatus = 1
	TankStatusOffline     TankStatus = 2
)

func (s TankStatus) String() string {
	names := [...]string{"Active", "Maintenance", "Offline"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Active"
	}
	return names[s]
}

func (s TankStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TankStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TankStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = TankStatusActive
	case "Maintenance":
		*s = TankStatusMaintenance
	case "Offline":
		*s = TankStatusOffline
	}
	return nil
}

func (s TankStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TankStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TankStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TankStatus(v)
	case int:
		*s = TankStatus(v)
	}
	return nil
}
