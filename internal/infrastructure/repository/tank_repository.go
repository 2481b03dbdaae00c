package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type tankRepository struct {
	db *gorm.DB
}

// NewTankRepository creates a new tank repository
func NewTankRepository(db *gorm.DB) domainRepo.TankRepository {
	return &tankRepository{db: db}
}

func (r *tankRepository) Create(ctx context.Context, tank *entity.Tank) error {
	return dbFor(ctx, r.db).Create(tank).Error
}

func (r *tankRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	var tank entity.Tank
	err := dbFor(ctx, r.db).Preload("Product").First(&tank, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tank, err
}

func (r *tankRepository) Update(ctx context.Context, tank *entity.Tank) error {
	return dbFor(ctx, r.db).Save(tank).Error
}

func (r *tankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFor(ctx, r.db).Delete(&entity.Tank{}, "id = ?", id).Error
}

func (r *tankRepository) List(ctx context.Context) ([]entity.Tank, error) {
	var tanks []entity.Tank
	err := dbFor(ctx, r.db).
		Preload("Product").
		Order("name ASC").
		Find(&tanks).Error
	return tanks, err
}

func (r *tankRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Tank, error) {
	var tanks []entity.Tank
	err := dbFor(ctx, r.db).
		Where("product_id = ?", productID).
		Order("name ASC").
		Find(&tanks).Error
	return tanks, err
}

// AdjustLevel applies a signed level delta atomically. The WHERE guard
// rejects changes that would empty the tank below zero or overfill it.
func (r *tankRepository) AdjustLevel(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := dbFor(ctx, r.db).Model(&entity.Tank{}).
		Where("id = ? AND current_level + ? >= 0 AND current_level + ? <= capacity", id, delta, delta).
		UpdateColumn("current_level", gorm.Expr("current_level + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewAppError(422, "Tank level adjustment out of range")
	}
	return nil
}
