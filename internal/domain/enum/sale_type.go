package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleType represents the kind of goods sold
type SaleType string

const (
	SaleTypeFuel SaleType = "fuel"
	SaleTypeShop SaleType = "shop"
)

func (t SaleType) String() string {
	return string(t)
}

func (t SaleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SaleType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SaleType(str)
	return nil
}

func (t SaleType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *SaleType) Scan(value interface{}) error {
	if value == nil {
		*t = SaleTypeFuel
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = SaleType(v)
	case []byte:
		*t = SaleType(string(v))
	}
	return nil
}
