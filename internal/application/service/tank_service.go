package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// TankService handles fuel tank operations
type TankService struct {
	tankRepo    repository.TankRepository
	productRepo repository.ProductRepository
}

// NewTankService creates a new tank service
func NewTankService(tankRepo repository.TankRepository, productRepo repository.ProductRepository) *TankService {
	return &TankService{tankRepo: tankRepo, productRepo: productRepo}
}

// CreateTankInput represents the create tank input
type CreateTankInput struct {
	Name         string
	ProductID    uuid.UUID
	Capacity     decimal.Decimal
	CurrentLevel decimal.Decimal
}

// CreateTank creates a new fuel tank bound to a fuel product
func (s *TankService) CreateTank(ctx context.Context, input *CreateTankInput) (*entity.Tank, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if product.Category != enum.ProductCategoryFuel {
		return nil, apperror.NewBadRequestError("Tanks can only hold fuel products")
	}
	if !input.Capacity.IsPositive() {
		return nil, apperror.NewBadRequestError("Tank capacity must be positive")
	}
	if input.CurrentLevel.IsNegative() || input.CurrentLevel.GreaterThan(input.Capacity) {
		return nil, apperror.NewBadRequestError("Tank level must be between zero and capacity")
	}

	tank := &entity.Tank{
		Name:         input.Name,
		ProductID:    input.ProductID,
		Capacity:     input.Capacity,
		CurrentLevel: input.CurrentLevel,
		Status:       enum.TankStatusActive,
	}
	if err := s.tankRepo.Create(ctx, tank); err != nil {
		return nil, err
	}
	return tank, nil
}

// GetTank retrieves a tank by ID
func (s *TankService) GetTank(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	tank, err := s.tankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}
	return tank, nil
}

// UpdateTankInput represents the update tank input
type UpdateTankInput struct {
	Name     *string
	Capacity *decimal.Decimal
	Status   *enum.TankStatus
}

// UpdateTank updates a tank's details
func (s *TankService) UpdateTank(ctx context.Context, id uuid.UUID, input *UpdateTankInput) (*entity.Tank, error) {
	tank, err := s.GetTank(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tank.Name = *input.Name
	}
	if input.Capacity != nil {
		if input.Capacity.LessThan(tank.CurrentLevel) {
			return nil, apperror.NewBadRequestError("Capacity cannot be below the current level")
		}
		tank.Capacity = *input.Capacity
	}
	if input.Status != nil {
		tank.Status = *input.Status
	}

	if err := s.tankRepo.Update(ctx, tank); err != nil {
		return nil, err
	}
	return tank, nil
}

// DeleteTank removes a tank
func (s *TankService) DeleteTank(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTank(ctx, id); err != nil {
		return err
	}
	return s.tankRepo.Delete(ctx, id)
}

// ListTanks retrieves all tanks with their products
func (s *TankService) ListTanks(ctx context.Context) ([]entity.Tank, error) {
	return s.tankRepo.List(ctx)
}

// DipTank records a manual dip reading, correcting the tracked level
func (s *TankService) DipTank(ctx context.Context, id uuid.UUID, measuredLevel decimal.Decimal) (*entity.Tank, error) {
	tank, err := s.GetTank(ctx, id)
	if err != nil {
		return nil, err
	}
	if measuredLevel.IsNegative() || measuredLevel.GreaterThan(tank.Capacity) {
		return nil, apperror.NewBadRequestError("Measured level must be between zero and capacity")
	}
	delta := measuredLevel.Sub(tank.CurrentLevel)
	if !delta.IsZero() {
		if err := s.tankRepo.AdjustLevel(ctx, id, delta); err != nil {
			return nil, err
		}
	}
	return s.GetTank(ctx, id)
}
