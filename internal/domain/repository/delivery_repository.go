package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/pkg/pagination"
)

// DeliveryRepository defines the interface for fuel delivery data operations
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.FuelDelivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelDelivery, error)
	Update(ctx context.Context, delivery *entity.FuelDelivery) error
	List(ctx context.Context, params *DeliveryFilterParams) ([]entity.FuelDelivery, int64, error)
}

// DeliveryFilterParams contains filtering parameters for delivery queries
type DeliveryFilterParams struct {
	Pagination *pagination.PaginationParams
	SupplierID *uuid.UUID
	TankID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
