package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductCategory represents the type of product sold at the station
type ProductCategory string

const (
	ProductCategoryFuel      ProductCategory = "fuel"
	ProductCategoryLubricant ProductCategory = "lubricant"
	ProductCategoryShop      ProductCategory = "shop"
)

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ProductCategory(str)
	return nil
}

func (c ProductCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ProductCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ProductCategoryShop
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = ProductCategory(v)
	case []byte:
		*c = ProductCategory(string(v))
	}
	return nil
}
