package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FuelDelivery represents a tanker delivery from a supplier into a storage
// tank. Receiving a delivery raises the tank level and the product stock.
type FuelDelivery struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	TankID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"tank_id"`
	DeliveryDate time.Time           `gorm:"type:date;not null" json:"delivery_date"`
	Quantity     decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"quantity"`
	UnitCost     decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	TotalCost    decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	InvoiceNo    string              `gorm:"size:100" json:"invoice_no"`
	Status       enum.DeliveryStatus `gorm:"default:0" json:"status"`
	ReceivedBy   *uuid.UUID          `gorm:"type:uuid" json:"received_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Tank     Tank     `gorm:"foreignKey:TankID" json:"tank,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fuel delivery
func (d *FuelDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelDelivery model
func (FuelDelivery) TableName() string {
	return "fuel_deliveries"
}
