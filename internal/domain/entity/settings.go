package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StationSettings holds station-wide configuration. A single row is seeded
// on startup; CreditTermDays drives the due date of reconciled credit sales.
type StationSettings struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StationName       string          `gorm:"size:255;default:'Petrol Station'" json:"station_name"`
	Currency          string          `gorm:"size:10;default:'KES'" json:"currency"`
	CreditTermDays    int             `gorm:"default:30" json:"credit_term_days"`
	VATRate           decimal.Decimal `gorm:"type:decimal(5,2);default:16" json:"vat_rate"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(12,2);default:100" json:"low_stock_threshold"`
	ReceiptFooter     string          `gorm:"type:text" json:"receipt_footer"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating station settings
func (s *StationSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StationSettings model
func (StationSettings) TableName() string {
	return "station_settings"
}
