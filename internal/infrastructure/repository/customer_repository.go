package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type creditCustomerRepository struct {
	db *gorm.DB
}

// NewCreditCustomerRepository creates a new credit customer repository
func NewCreditCustomerRepository(db *gorm.DB) domainRepo.CreditCustomerRepository {
	return &creditCustomerRepository{db: db}
}

func (r *creditCustomerRepository) Create(ctx context.Context, customer *entity.CreditCustomer) error {
	return dbFor(ctx, r.db).Create(customer).Error
}

func (r *creditCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditCustomer, error) {
	var customer entity.CreditCustomer
	err := dbFor(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *creditCustomerRepository) Update(ctx context.Context, customer *entity.CreditCustomer) error {
	return dbFor(ctx, r.db).Save(customer).Error
}

func (r *creditCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFor(ctx, r.db).Delete(&entity.CreditCustomer{}, "id = ?", id).Error
}

func (r *creditCustomerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.CreditCustomer, int64, error) {
	var customers []entity.CreditCustomer
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.CreditCustomer{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

// IncrementBalance applies the balance change with a single atomic UPDATE so
// concurrent reconciliations touching the same customer cannot lose updates.
func (r *creditCustomerRepository) IncrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := dbFor(ctx, r.db).Model(&entity.CreditCustomer{}).
		Where("id = ?", id).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Credit customer")
	}
	return nil
}

func (r *creditCustomerRepository) DecrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := dbFor(ctx, r.db).Model(&entity.CreditCustomer{}).
		Where("id = ?", id).
		UpdateColumn("current_balance", gorm.Expr("current_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Credit customer")
	}
	return nil
}
