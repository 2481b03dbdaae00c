package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TankRepository defines the interface for tank data operations.
// AdjustLevel applies a signed delta atomically and fails when the result
// would be negative or exceed the tank's capacity.
type TankRepository interface {
	Create(ctx context.Context, tank *entity.Tank) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tank, error)
	Update(ctx context.Context, tank *entity.Tank) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Tank, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Tank, error)
	AdjustLevel(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}
