package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyCashRecord is one staff cash-out event summarizing a shift's
// collections. CollectedCredit is the total sold on customer accounts during
// the shift; the reconciler turns it into sales, receivables and ledger rows.
//
// CreditCustomerID is the legacy single-customer field kept for records
// created before per-customer detail rows existed. New records itemize
// credit through CreditDetails instead.
type DailyCashRecord struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	StaffID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"staff_id"`
	RecordDate       time.Time         `gorm:"type:date;not null;index" json:"record_date"`
	CollectedCash    decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"collected_cash"`
	CollectedCard    decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"collected_card"`
	CollectedCredit  decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"collected_credit"`
	CreditCustomerID *uuid.UUID        `gorm:"type:uuid" json:"credit_customer_id,omitempty"`
	Status           enum.RecordStatus `gorm:"default:0" json:"status"`
	Notes            string            `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Staff          Staff             `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	CreditCustomer *CreditCustomer   `gorm:"foreignKey:CreditCustomerID" json:"credit_customer,omitempty"`
	CreditDetails  []CreditSaleDetail `gorm:"foreignKey:RecordID" json:"credit_details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new cash record
func (r *DailyCashRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyCashRecord model
func (DailyCashRecord) TableName() string {
	return "daily_cash_records"
}

// HasCredit reports whether the record carries any credit to reconcile
func (r *DailyCashRecord) HasCredit() bool {
	return r.CollectedCredit.IsPositive()
}

// CreditSaleDetail itemizes one customer's share of a cash record's credit
// amount (the multi-customer settlement model).
type CreditSaleDetail struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RecordID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"record_id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Record   DailyCashRecord `gorm:"foreignKey:RecordID" json:"-"`
	Customer CreditCustomer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new credit sale detail
func (d *CreditSaleDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditSaleDetail model
func (CreditSaleDetail) TableName() string {
	return "credit_sales_details"
}
