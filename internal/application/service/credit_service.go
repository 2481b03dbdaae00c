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

// CreditService handles credit customer accounts, payments and the ledger
type CreditService struct {
	txManager      repository.TxManager
	customerRepo   repository.CreditCustomerRepository
	creditSaleRepo repository.CreditSaleRepository
	creditTxnRepo  repository.CreditTransactionRepository
	saleRepo       repository.SaleRepository
}

// NewCreditService creates a new credit service
func NewCreditService(
	txManager repository.TxManager,
	customerRepo repository.CreditCustomerRepository,
	creditSaleRepo repository.CreditSaleRepository,
	creditTxnRepo repository.CreditTransactionRepository,
	saleRepo repository.SaleRepository,
) *CreditService {
	return &CreditService{
		txManager:      txManager,
		customerRepo:   customerRepo,
		creditSaleRepo: creditSaleRepo,
		creditTxnRepo:  creditTxnRepo,
		saleRepo:       saleRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name         string
	Phone        *string
	Email        *string
	Address      *string
	VehicleRegNo *string
	CreditLimit  decimal.Decimal
}

// CreateCustomer creates a new credit customer
func (s *CreditService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.CreditCustomer, error) {
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
	}
	customer := &entity.CreditCustomer{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
		VehicleRegNo: input.VehicleRegNo,
		CreditLimit:  input.CreditLimit,
		Active:       true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a credit customer by ID
func (s *CreditService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.CreditCustomer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Credit customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name         *string
	Phone        *string
	Email        *string
	Address      *string
	VehicleRegNo *string
	CreditLimit  *decimal.Decimal
	Active       *bool
}

// UpdateCustomer updates a credit customer's details. The balance is never
// set directly; it only moves through sales, payments and adjustments.
func (s *CreditService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.CreditCustomer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.VehicleRegNo != nil {
		customer.VehicleRegNo = input.VehicleRegNo
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
		}
		customer.CreditLimit = *input.CreditLimit
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer that carries no outstanding balance
func (s *CreditService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if customer.CurrentBalance.IsPositive() {
		return apperror.NewConflictError("Customer has an outstanding balance")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers retrieves credit customers with pagination and search
func (s *CreditService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.CreditCustomer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// RecordPaymentInput represents a payment against a customer's account
type RecordPaymentInput struct {
	CustomerID  uuid.UUID
	Amount      decimal.Decimal
	ReferenceNo string
	Notes       string
	CreatedBy   uuid.UUID
}

// RecordPayment applies a payment to a customer's account. The amount is
// settled against outstanding receivables oldest due date first, the balance
// is decremented and a payment ledger entry posted, all in one transaction.
func (s *CreditService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.CreditTransaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	customer, err := s.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(customer.CurrentBalance) {
		return nil, apperror.NewBadRequestError("Payment exceeds the outstanding balance")
	}

	referenceNo := input.ReferenceNo
	if referenceNo == "" {
		referenceNo = utils.GeneratePaymentRef()
	}

	var txn *entity.CreditTransaction
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.creditTxnRepo.GetByReference(ctx, referenceNo, input.CustomerID, enum.TransactionTypePayment)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Payment with this reference already recorded")
		}

		outstanding, err := s.creditSaleRepo.ListOutstandingByCustomer(ctx, input.CustomerID)
		if err != nil {
			return err
		}

		remaining := input.Amount
		for i := range outstanding {
			if !remaining.IsPositive() {
				break
			}
			cs := &outstanding[i]
			applied := decimal.Min(remaining, cs.RemainingAmount)
			cs.RemainingAmount = cs.RemainingAmount.Sub(applied)
			if cs.RemainingAmount.IsZero() {
				cs.Status = enum.CreditStatusPaid
			} else {
				cs.Status = enum.CreditStatusPartial
			}
			if err := s.creditSaleRepo.Update(ctx, cs); err != nil {
				return err
			}
			remaining = remaining.Sub(applied)
		}

		if err := s.customerRepo.DecrementBalance(ctx, input.CustomerID, input.Amount); err != nil {
			return err
		}
		fresh, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}

		txn = &entity.CreditTransaction{
			CustomerID:   input.CustomerID,
			Type:         enum.TransactionTypePayment,
			Amount:       input.Amount,
			ReferenceNo:  referenceNo,
			BalanceAfter: fresh.CurrentBalance,
			Notes:        input.Notes,
			CreatedBy:    input.CreatedBy,
		}
		return s.creditTxnRepo.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// RecordAdjustmentInput represents a manual balance correction
type RecordAdjustmentInput struct {
	CustomerID  uuid.UUID
	Amount      decimal.Decimal
	ReferenceNo string
	Notes       string
	CreatedBy   uuid.UUID
}

// RecordAdjustment posts a signed manual correction to a customer's balance
// with a ledger entry documenting it. Positive increases the debt.
func (s *CreditService) RecordAdjustment(ctx context.Context, input *RecordAdjustmentInput) (*entity.CreditTransaction, error) {
	if input.Amount.IsZero() {
		return nil, apperror.NewBadRequestError("Adjustment amount cannot be zero")
	}
	if input.Notes == "" {
		return nil, apperror.NewBadRequestError("Adjustments require a note explaining the correction")
	}

	if _, err := s.GetCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	referenceNo := input.ReferenceNo
	if referenceNo == "" {
		referenceNo = utils.GeneratePaymentRef()
	}

	var txn *entity.CreditTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.creditTxnRepo.GetByReference(ctx, referenceNo, input.CustomerID, enum.TransactionTypeAdjustment)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Adjustment with this reference already recorded")
		}

		if err := s.customerRepo.IncrementBalance(ctx, input.CustomerID, input.Amount); err != nil {
			return err
		}
		fresh, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}

		txn = &entity.CreditTransaction{
			CustomerID:   input.CustomerID,
			Type:         enum.TransactionTypeAdjustment,
			Amount:       input.Amount,
			ReferenceNo:  referenceNo,
			BalanceAfter: fresh.CurrentBalance,
			Notes:        input.Notes,
			CreatedBy:    input.CreatedBy,
		}
		return s.creditTxnRepo.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ListCreditSales retrieves receivables with filtering and pagination
func (s *CreditService) ListCreditSales(ctx context.Context, params *repository.CreditSaleFilterParams) (*pagination.PaginatedResult[entity.CreditSale], error) {
	creditSales, total, err := s.creditSaleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(creditSales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetCustomerLedger retrieves a customer's transaction history
func (s *CreditService) GetCustomerLedger(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CreditTransaction], error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	txns, total, err := s.creditTxnRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(txns,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
