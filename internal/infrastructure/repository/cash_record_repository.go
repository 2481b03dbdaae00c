package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashRecordRepository struct {
	db *gorm.DB
}

// NewCashRecordRepository creates a new cash record repository
func NewCashRecordRepository(db *gorm.DB) domainRepo.CashRecordRepository {
	return &cashRecordRepository{db: db}
}

func (r *cashRecordRepository) Create(ctx context.Context, record *entity.DailyCashRecord) error {
	return dbFor(ctx, r.db).Create(record).Error
}

func (r *cashRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyCashRecord, error) {
	var record entity.DailyCashRecord
	err := dbFor(ctx, r.db).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *cashRecordRepository) GetWithStaff(ctx context.Context, id uuid.UUID) (*entity.DailyCashRecord, error) {
	var record entity.DailyCashRecord
	err := dbFor(ctx, r.db).
		Preload("Staff").
		Preload("CreditDetails").
		Preload("CreditDetails.Customer").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *cashRecordRepository) Update(ctx context.Context, record *entity.DailyCashRecord) error {
	return dbFor(ctx, r.db).Save(record).Error
}

func (r *cashRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RecordStatus) error {
	return dbFor(ctx, r.db).Model(&entity.DailyCashRecord{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *cashRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFor(ctx, r.db).Delete(&entity.DailyCashRecord{}, "id = ?", id).Error
}

func (r *cashRecordRepository) List(ctx context.Context, params *domainRepo.CashRecordFilterParams) ([]entity.DailyCashRecord, int64, error) {
	var records []entity.DailyCashRecord
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.DailyCashRecord{})

	if params.StaffID != nil {
		query = query.Where("staff_id = ?", *params.StaffID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("record_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("record_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Staff").
		Order("record_date DESC, created_at DESC").
		Find(&records).Error

	return records, total, err
}

func (r *cashRecordRepository) ListUnreconciledWithCredit(ctx context.Context) ([]entity.DailyCashRecord, error) {
	var records []entity.DailyCashRecord
	err := dbFor(ctx, r.db).
		Where("status = ?", enum.RecordStatusPending).
		Where("collected_credit > 0").
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}

type creditSaleDetailRepository struct {
	db *gorm.DB
}

// NewCreditSaleDetailRepository creates a new credit sale detail repository
func NewCreditSaleDetailRepository(db *gorm.DB) domainRepo.CreditSaleDetailRepository {
	return &creditSaleDetailRepository{db: db}
}

func (r *creditSaleDetailRepository) Create(ctx context.Context, detail *entity.CreditSaleDetail) error {
	return dbFor(ctx, r.db).Create(detail).Error
}

func (r *creditSaleDetailRepository) CreateBatch(ctx context.Context, details []entity.CreditSaleDetail) error {
	return dbFor(ctx, r.db).Create(&details).Error
}

func (r *creditSaleDetailRepository) GetByRecordID(ctx context.Context, recordID uuid.UUID) ([]entity.CreditSaleDetail, error) {
	var details []entity.CreditSaleDetail
	err := dbFor(ctx, r.db).
		Preload("Customer").
		Where("record_id = ?", recordID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

func (r *creditSaleDetailRepository) DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error {
	return dbFor(ctx, r.db).Delete(&entity.CreditSaleDetail{}, "record_id = ?", recordID).Error
}
