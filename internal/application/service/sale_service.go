package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SaleService handles point-of-sale operations
type SaleService struct {
	txManager      repository.TxManager
	saleRepo       repository.SaleRepository
	saleItemRepo   repository.SaleItemRepository
	productRepo    repository.ProductRepository
	tankRepo       repository.TankRepository
	customerRepo   repository.CreditCustomerRepository
	creditSaleRepo repository.CreditSaleRepository
	creditTxnRepo  repository.CreditTransactionRepository
	settingsRepo   repository.SettingsRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	txManager repository.TxManager,
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	tankRepo repository.TankRepository,
	customerRepo repository.CreditCustomerRepository,
	creditSaleRepo repository.CreditSaleRepository,
	creditTxnRepo repository.CreditTransactionRepository,
	settingsRepo repository.SettingsRepository,
) *SaleService {
	return &SaleService{
		txManager:      txManager,
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		productRepo:    productRepo,
		tankRepo:       tankRepo,
		customerRepo:   customerRepo,
		creditSaleRepo: creditSaleRepo,
		creditTxnRepo:  creditTxnRepo,
		settingsRepo:   settingsRepo,
	}
}

// SaleItemInput represents a line item in a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID         uuid.UUID
	StaffID        *uuid.UUID
	CustomerID     *uuid.UUID
	SaleType       enum.SaleType
	PaymentStatus  enum.PaymentStatus
	DiscountAmount decimal.Decimal
	SaleDate       time.Time
	Items          []SaleItemInput
}

// CreateSale creates a sale with its line items, decrements product stock
// (and tank levels for fuel) and, for credit sales, opens a receivable and
// posts a ledger entry.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale requires at least one item")
	}

	var customer *entity.CreditCustomer
	if input.PaymentStatus == enum.PaymentStatusCredit {
		if input.CustomerID == nil {
			return nil, apperror.NewBadRequestError("Credit sales require a customer")
		}
		var err error
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Credit customer")
		}
		if !customer.Active {
			return nil, apperror.NewBadRequestError("Customer account is inactive")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for %s", product.Name))
		}
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SellingPrice
		}
		lineTotal := unitPrice.Mul(item.Quantity)
		total = total.Add(lineTotal)
		items = append(items, entity.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
	}

	netAmount := total.Sub(input.DiscountAmount)
	if netAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount exceeds sale total")
	}

	if customer != nil && customer.CreditLimit.IsPositive() {
		if customer.CurrentBalance.Add(netAmount).GreaterThan(customer.CreditLimit) {
			return nil, apperror.ErrCreditLimitExceeded
		}
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	sale := &entity.Sale{
		InvoiceNo:      utils.GenerateInvoiceNo(),
		SaleDate:       saleDate,
		StaffID:        input.StaffID,
		UserID:         input.UserID,
		CustomerID:     input.CustomerID,
		SaleType:       input.SaleType,
		PaymentStatus:  input.PaymentStatus,
		TotalAmount:    total,
		DiscountAmount: input.DiscountAmount,
		NetAmount:      netAmount,
	}

	if input.PaymentStatus == enum.PaymentStatusCredit {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		dueDate := saleDate.AddDate(0, 0, settings.CreditTermDays)
		creditStatus := enum.CreditStatusPending
		sale.DueDate = &dueDate
		sale.CreditStatus = &creditStatus
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := s.saleItemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}
		for _, item := range items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
			if productMap[item.ProductID].Category == enum.ProductCategoryFuel {
				if err := s.drainTanks(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		if input.PaymentStatus != enum.PaymentStatusCredit {
			return nil
		}
		creditSale := &entity.CreditSale{
			CustomerID:      *input.CustomerID,
			SaleID:          sale.ID,
			CreditAmount:    netAmount,
			RemainingAmount: netAmount,
			DueDate:         *sale.DueDate,
			Status:          enum.CreditStatusPending,
		}
		if err := s.creditSaleRepo.Create(ctx, creditSale); err != nil {
			return err
		}
		if err := s.customerRepo.IncrementBalance(ctx, *input.CustomerID, netAmount); err != nil {
			return err
		}
		fresh, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		return s.creditTxnRepo.Create(ctx, &entity.CreditTransaction{
			CustomerID:   *input.CustomerID,
			SaleID:       &sale.ID,
			Type:         enum.TransactionTypeSale,
			Amount:       netAmount,
			ReferenceNo:  sale.InvoiceNo,
			BalanceAfter: fresh.CurrentBalance,
			CreatedBy:    input.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	sale.Items = items
	return sale, nil
}

// drainTanks draws a dispensed fuel quantity from the product's tanks,
// fullest tank first so a sale larger than any single tank still clears.
// Products without a tracked tank only carry the stock figure.
func (s *SaleService) drainTanks(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	tanks, err := s.tankRepo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(tanks) == 0 {
		return nil
	}

	sort.Slice(tanks, func(i, j int) bool {
		return tanks[i].CurrentLevel.GreaterThan(tanks[j].CurrentLevel)
	})

	remaining := quantity
	for i := range tanks {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(remaining, tanks[i].CurrentLevel)
		if !take.IsPositive() {
			continue
		}
		if err := s.tankRepo.AdjustLevel(ctx, tanks[i].ID, take.Neg()); err != nil {
			return err
		}
		remaining = remaining.Sub(take)
	}
	if remaining.IsPositive() {
		return apperror.NewConflictError("Tank levels cannot cover the fuel quantity sold")
	}
	return nil
}

// returnToTanks puts a voided fuel quantity back, emptiest tank first,
// within each tank's capacity.
func (s *SaleService) returnToTanks(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	tanks, err := s.tankRepo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(tanks) == 0 {
		return nil
	}

	sort.Slice(tanks, func(i, j int) bool {
		return tanks[i].CurrentLevel.LessThan(tanks[j].CurrentLevel)
	})

	remaining := quantity
	for i := range tanks {
		if !remaining.IsPositive() {
			break
		}
		put := decimal.Min(remaining, tanks[i].Capacity.Sub(tanks[i].CurrentLevel))
		if !put.IsPositive() {
			continue
		}
		if err := s.tankRepo.AdjustLevel(ctx, tanks[i].ID, put); err != nil {
			return err
		}
		remaining = remaining.Sub(put)
	}
	if remaining.IsPositive() {
		return apperror.NewConflictError("Tank capacity cannot absorb the voided fuel quantity")
	}
	return nil
}

// GetSale retrieves a sale with its line items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// VoidSale marks a sale voided and restores the stock it consumed. Credit
// sales that already opened a receivable cannot be voided.
func (s *SaleService) VoidSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Voided {
		return apperror.NewConflictError("Sale is already voided")
	}
	if sale.IsCredit() {
		creditSale, err := s.creditSaleRepo.GetBySaleID(ctx, id)
		if err != nil {
			return err
		}
		if creditSale != nil {
			return apperror.NewConflictError("Credit sales with an open receivable cannot be voided")
		}
	}

	productIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return err
	}
	fuelProducts := make(map[uuid.UUID]bool, len(products))
	for _, product := range products {
		if product.Category == enum.ProductCategoryFuel {
			fuelProducts[product.ID] = true
		}
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		for _, item := range sale.Items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if fuelProducts[item.ProductID] {
				if err := s.returnToTanks(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		sale.Voided = true
		return s.saleRepo.Update(ctx, sale)
	})
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
