package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"gorm.io/gorm"
)

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new fuel delivery repository
func NewDeliveryRepository(db *gorm.DB) domainRepo.DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *entity.FuelDelivery) error {
	return dbFor(ctx, r.db).Create(delivery).Error
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelDelivery, error) {
	var delivery entity.FuelDelivery
	err := dbFor(ctx, r.db).
		Preload("Supplier").
		Preload("Tank").
		First(&delivery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &delivery, err
}

func (r *deliveryRepository) Update(ctx context.Context, delivery *entity.FuelDelivery) error {
	return dbFor(ctx, r.db).Save(delivery).Error
}

func (r *deliveryRepository) List(ctx context.Context, params *domainRepo.DeliveryFilterParams) ([]entity.FuelDelivery, int64, error) {
	var deliveries []entity.FuelDelivery
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.FuelDelivery{})

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.TankID != nil {
		query = query.Where("tank_id = ?", *params.TankID)
	}
	if params.StartDate != nil {
		query = query.Where("delivery_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("delivery_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Preload("Tank").
		Order("delivery_date DESC").
		Find(&deliveries).Error

	return deliveries, total, err
}
