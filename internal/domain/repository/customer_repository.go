package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CreditCustomerRepository defines the interface for credit customer data
// operations. Balance changes go through the atomic increment/decrement
// methods so concurrent reconciliations cannot lose updates.
type CreditCustomerRepository interface {
	Create(ctx context.Context, customer *entity.CreditCustomer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditCustomer, error)
	Update(ctx context.Context, customer *entity.CreditCustomer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.CreditCustomer, int64, error)
	IncrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	DecrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}
