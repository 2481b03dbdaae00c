package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditSale is the receivable record tracking what a customer owes for one
// sale. SaleID carries a unique index so lookup-or-create during
// reconciliation is enforced by the database, not just by the read.
type CreditSale struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	SaleID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"sale_id"`
	CreditAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"credit_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"remaining_amount"`
	DueDate         time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status          enum.CreditStatus `gorm:"size:50;default:'pending'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer CreditCustomer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Sale     Sale           `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
}

// BeforeCreate generates a UUID before creating a new credit sale
func (cs *CreditSale) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditSale model
func (CreditSale) TableName() string {
	return "credit_sales"
}

// CreditTransaction is an append-only ledger entry recording a balance change
// for a customer. BalanceAfter snapshots the customer's balance once the
// change was applied. The (reference_no, customer_id, type) triple is unique
// so a settlement can be reconciled repeatedly without duplicating entries.
type CreditTransaction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_credit_txn_ref" json:"customer_id"`
	SaleID          *uuid.UUID           `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Type            enum.TransactionType `gorm:"size:50;not null;uniqueIndex:idx_credit_txn_ref" json:"type"`
	Amount          decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReferenceNo     string               `gorm:"size:100;not null;uniqueIndex:idx_credit_txn_ref" json:"reference_no"`
	BalanceAfter    decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	Notes           string               `gorm:"type:text" json:"notes"`
	CreatedBy       uuid.UUID            `gorm:"type:uuid" json:"created_by"`
	TransactionDate time.Time            `gorm:"not null" json:"transaction_date"`
	CreatedAt       time.Time            `json:"created_at"`

	// Relationships
	Customer CreditCustomer `gorm:"foreignKey:CustomerID" json:"-"`
	Sale     *Sale          `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new credit transaction
func (ct *CreditTransaction) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	if ct.TransactionDate.IsZero() {
		ct.TransactionDate = time.Now()
	}
	return nil
}

// TableName returns the table name for the CreditTransaction model
func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
