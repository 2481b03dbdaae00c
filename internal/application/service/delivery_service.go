package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DeliveryService handles fuel delivery operations
type DeliveryService struct {
	txManager    repository.TxManager
	deliveryRepo repository.DeliveryRepository
	supplierRepo repository.SupplierRepository
	tankRepo     repository.TankRepository
	productRepo  repository.ProductRepository
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	txManager repository.TxManager,
	deliveryRepo repository.DeliveryRepository,
	supplierRepo repository.SupplierRepository,
	tankRepo repository.TankRepository,
	productRepo repository.ProductRepository,
) *DeliveryService {
	return &DeliveryService{
		txManager:    txManager,
		deliveryRepo: deliveryRepo,
		supplierRepo: supplierRepo,
		tankRepo:     tankRepo,
		productRepo:  productRepo,
	}
}

// CreateDeliveryInput represents the create delivery input
type CreateDeliveryInput struct {
	SupplierID   uuid.UUID
	TankID       uuid.UUID
	DeliveryDate time.Time
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	InvoiceNo    string
}

// CreateDelivery registers an expected fuel delivery
func (s *DeliveryService) CreateDelivery(ctx context.Context, input *CreateDeliveryInput) (*entity.FuelDelivery, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	tank, err := s.tankRepo.GetByID(ctx, input.TankID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}

	if !input.Quantity.IsPositive() {
		return nil, apperror.NewBadRequestError("Delivery quantity must be positive")
	}
	if input.UnitCost.IsNegative() {
		return nil, apperror.NewBadRequestError("Unit cost cannot be negative")
	}

	delivery := &entity.FuelDelivery{
		SupplierID:   input.SupplierID,
		TankID:       input.TankID,
		DeliveryDate: input.DeliveryDate,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		TotalCost:    input.UnitCost.Mul(input.Quantity),
		InvoiceNo:    input.InvoiceNo,
		Status:       enum.DeliveryStatusPending,
	}
	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// GetDelivery retrieves a delivery by ID
func (s *DeliveryService) GetDelivery(ctx context.Context, id uuid.UUID) (*entity.FuelDelivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, apperror.NewNotFoundError("Fuel delivery")
	}
	return delivery, nil
}

// ReceiveDelivery marks a pending delivery received, raising the tank level
// and the product stock in one transaction.
func (s *DeliveryService) ReceiveDelivery(ctx context.Context, id, receivedBy uuid.UUID) (*entity.FuelDelivery, error) {
	delivery, err := s.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status == enum.DeliveryStatusReceived {
		return nil, apperror.NewConflictError("Delivery has already been received")
	}

	tank, err := s.tankRepo.GetByID(ctx, delivery.TankID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tankRepo.AdjustLevel(ctx, delivery.TankID, delivery.Quantity); err != nil {
			return err
		}
		if err := s.productRepo.AdjustStock(ctx, tank.ProductID, delivery.Quantity); err != nil {
			return err
		}
		delivery.Status = enum.DeliveryStatusReceived
		delivery.ReceivedBy = &receivedBy
		return s.deliveryRepo.Update(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

// ListDeliveries retrieves deliveries with filtering and pagination
func (s *DeliveryService) ListDeliveries(ctx context.Context, params *repository.DeliveryFilterParams) (*pagination.PaginatedResult[entity.FuelDelivery], error) {
	deliveries, total, err := s.deliveryRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(deliveries,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
