package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/pkg/pagination"
)

// CreditSaleRepository defines data operations for receivable records
type CreditSaleRepository interface {
	Create(ctx context.Context, creditSale *entity.CreditSale) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.CreditSale, error)
	Update(ctx context.Context, creditSale *entity.CreditSale) error
	List(ctx context.Context, params *CreditSaleFilterParams) ([]entity.CreditSale, int64, error)
	ListOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CreditSale, error)
}

// CreditSaleFilterParams contains filtering parameters for credit sale queries
type CreditSaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.CreditStatus
	OverdueOnly bool
}

// CreditTransactionRepository defines data operations for the customer ledger
type CreditTransactionRepository interface {
	Create(ctx context.Context, txn *entity.CreditTransaction) error
	GetByReference(ctx context.Context, referenceNo string, customerID uuid.UUID, txnType enum.TransactionType) (*entity.CreditTransaction, error)
	UpdateSaleID(ctx context.Context, id, saleID uuid.UUID) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.CreditTransaction, int64, error)
	ListByReference(ctx context.Context, referenceNo string) ([]entity.CreditTransaction, error)
}
