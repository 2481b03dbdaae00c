package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents one point-of-sale transaction. Credit sales carry the
// customer, a due date and a credit status; reconciled settlement credit also
// lands here with ReferenceNo pointing back at the daily cash record.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo      string             `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	SaleDate       time.Time          `gorm:"type:date;not null" json:"sale_date"`
	StaffID        *uuid.UUID         `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleType       enum.SaleType      `gorm:"size:50;default:'fuel'" json:"sale_type"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:50;default:'cash'" json:"payment_status"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	NetAmount      decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"net_amount"`
	DueDate        *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	CreditStatus   *enum.CreditStatus `gorm:"size:50" json:"credit_status,omitempty"`
	ReferenceNo    string             `gorm:"size:100;index" json:"reference_no"`
	Voided         bool               `gorm:"default:false" json:"voided"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Staff    *Staff          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Customer *CreditCustomer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem      `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsCredit reports whether the sale was made on a customer account
func (s *Sale) IsCredit() bool {
	return s.PaymentStatus == enum.PaymentStatusCredit
}

// SaleItem represents a line item in a sale. Quantity is decimal because
// fuel is dispensed in fractional litres.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
