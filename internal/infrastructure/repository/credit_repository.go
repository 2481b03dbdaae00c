package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/pagination"
	"gorm.io/gorm"
)

type creditSaleRepository struct {
	db *gorm.DB
}

// NewCreditSaleRepository creates a new credit sale repository
func NewCreditSaleRepository(db *gorm.DB) domainRepo.CreditSaleRepository {
	return &creditSaleRepository{db: db}
}

func (r *creditSaleRepository) Create(ctx context.Context, creditSale *entity.CreditSale) error {
	return dbFor(ctx, r.db).Create(creditSale).Error
}

func (r *creditSaleRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.CreditSale, error) {
	var creditSale entity.CreditSale
	err := dbFor(ctx, r.db).First(&creditSale, "sale_id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &creditSale, err
}

func (r *creditSaleRepository) Update(ctx context.Context, creditSale *entity.CreditSale) error {
	return dbFor(ctx, r.db).Save(creditSale).Error
}

func (r *creditSaleRepository) List(ctx context.Context, params *domainRepo.CreditSaleFilterParams) ([]entity.CreditSale, int64, error) {
	var creditSales []entity.CreditSale
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.CreditSale{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OverdueOnly {
		query = query.Where("due_date < ? AND status IN ?", time.Now(),
			[]enum.CreditStatus{enum.CreditStatusPending, enum.CreditStatusPartial})
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Sale").
		Order("due_date ASC").
		Find(&creditSales).Error

	return creditSales, total, err
}

func (r *creditSaleRepository) ListOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CreditSale, error) {
	var creditSales []entity.CreditSale
	err := dbFor(ctx, r.db).
		Where("customer_id = ?", customerID).
		Where("status IN ?", []enum.CreditStatus{enum.CreditStatusPending, enum.CreditStatusPartial, enum.CreditStatusOverdue}).
		Order("due_date ASC, created_at ASC").
		Find(&creditSales).Error
	return creditSales, err
}

type creditTransactionRepository struct {
	db *gorm.DB
}

// NewCreditTransactionRepository creates a new credit transaction repository
func NewCreditTransactionRepository(db *gorm.DB) domainRepo.CreditTransactionRepository {
	return &creditTransactionRepository{db: db}
}

func (r *creditTransactionRepository) Create(ctx context.Context, txn *entity.CreditTransaction) error {
	return dbFor(ctx, r.db).Create(txn).Error
}

func (r *creditTransactionRepository) GetByReference(ctx context.Context, referenceNo string, customerID uuid.UUID, txnType enum.TransactionType) (*entity.CreditTransaction, error) {
	var txn entity.CreditTransaction
	err := dbFor(ctx, r.db).
		Where("reference_no = ? AND customer_id = ? AND type = ?", referenceNo, customerID, txnType).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *creditTransactionRepository) UpdateSaleID(ctx context.Context, id, saleID uuid.UUID) error {
	return dbFor(ctx, r.db).Model(&entity.CreditTransaction{}).
		Where("id = ?", id).
		Update("sale_id", saleID).Error
}

func (r *creditTransactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.CreditTransaction, int64, error) {
	var txns []entity.CreditTransaction
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.CreditTransaction{}).
		Where("customer_id = ?", customerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("transaction_date DESC, created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *creditTransactionRepository) ListByReference(ctx context.Context, referenceNo string) ([]entity.CreditTransaction, error) {
	var txns []entity.CreditTransaction
	err := dbFor(ctx, r.db).
		Where("reference_no = ?", referenceNo).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}
