package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an item sold at the station: a fuel grade, a lubricant
// or a shop item. Fuel products are backed by one or more tanks; their stock
// is tracked in litres.
type Product struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name         string               `gorm:"size:255;not null" json:"name"`
	Code         string               `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Category     enum.ProductCategory `gorm:"size:50;default:'shop'" json:"category"`
	Unit         string               `gorm:"size:50;default:'unit'" json:"unit"`
	CostPrice    decimal.Decimal      `gorm:"type:decimal(12,2);default:0" json:"cost_price"`
	SellingPrice decimal.Decimal      `gorm:"type:decimal(12,2);default:0" json:"selling_price"`
	Stock        decimal.Decimal      `gorm:"type:decimal(12,2);default:0" json:"stock"`
	ReorderLevel decimal.Decimal      `gorm:"type:decimal(12,2);default:0" json:"reorder_level"`
	Active       bool                 `gorm:"default:true" json:"active"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Tanks []Tank `gorm:"foreignKey:ProductID" json:"tanks,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether stock has fallen to or below the reorder level
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.ReorderLevel)
}
