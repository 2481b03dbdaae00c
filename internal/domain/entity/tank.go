package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tank represents an underground storage tank holding one fuel product.
// Capacity and CurrentLevel are in litres.
type Tank struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Capacity     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"capacity"`
	CurrentLevel decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"current_level"`
	Status       enum.TankStatus `gorm:"default:0" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tank
func (t *Tank) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tank model
func (Tank) TableName() string {
	return "tanks"
}

// FillPercentage returns the tank level as a percentage of capacity
func (t *Tank) FillPercentage() decimal.Decimal {
	if t.Capacity.IsZero() {
		return decimal.Zero
	}
	return t.CurrentLevel.Div(t.Capacity).Mul(decimal.NewFromInt(100)).Round(2)
}
