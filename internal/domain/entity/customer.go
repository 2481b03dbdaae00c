package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCustomer represents an account customer who buys fuel on credit.
// CurrentBalance is the amount the customer currently owes the station.
type CreditCustomer struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Phone          *string         `gorm:"size:50" json:"phone,omitempty"`
	Email          *string         `gorm:"size:255" json:"email,omitempty"`
	Address        *string         `gorm:"type:text" json:"address,omitempty"`
	VehicleRegNo   *string         `gorm:"size:50" json:"vehicle_reg_no,omitempty"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"credit_limit"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"current_balance"`
	Active         bool            `gorm:"default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	CreditSales  []CreditSale        `gorm:"foreignKey:CustomerID" json:"-"`
	Transactions []CreditTransaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new credit customer
func (c *CreditCustomer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditCustomer model
func (CreditCustomer) TableName() string {
	return "credit_customers"
}

// AvailableCredit returns how much more the customer can buy on credit
func (c *CreditCustomer) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentBalance)
}
