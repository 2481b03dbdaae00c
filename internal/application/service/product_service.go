package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles product catalog and stock operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name         string
	Code         string
	Category     enum.ProductCategory
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        decimal.Decimal
	ReorderLevel decimal.Decimal
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already in use")
	}

	product := &entity.Product{
		Name:         input.Name,
		Code:         code,
		Category:     input.Category,
		Unit:         input.Unit,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		Stock:        input.Stock,
		ReorderLevel: input.ReorderLevel,
		Active:       true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name         *string
	Category     *enum.ProductCategory
	Unit         *string
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	ReorderLevel *decimal.Decimal
	Active       *bool
}

// UpdateProduct updates a product. Stock is not set here; it moves through
// sales, deliveries and explicit adjustments.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.ReorderLevel != nil {
		product.ReorderLevel = *input.ReorderLevel
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts retrieves products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListLowStock retrieves active products at or below their reorder level
func (s *ProductService) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListLowStock(ctx)
}

// AdjustStock applies a signed manual stock correction
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*entity.Product, error) {
	if delta.IsZero() {
		return nil, apperror.NewBadRequestError("Adjustment cannot be zero")
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.productRepo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}
