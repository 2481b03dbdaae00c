package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/pkg/pagination"
)

// CashRecordRepository defines data operations for daily cash records
type CashRecordRepository interface {
	Create(ctx context.Context, record *entity.DailyCashRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyCashRecord, error)
	GetWithStaff(ctx context.Context, id uuid.UUID) (*entity.DailyCashRecord, error)
	Update(ctx context.Context, record *entity.DailyCashRecord) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RecordStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CashRecordFilterParams) ([]entity.DailyCashRecord, int64, error)
	ListUnreconciledWithCredit(ctx context.Context) ([]entity.DailyCashRecord, error)
}

// CashRecordFilterParams contains filtering parameters for cash record queries
type CashRecordFilterParams struct {
	Pagination *pagination.PaginationParams
	StaffID    *uuid.UUID
	Status     *enum.RecordStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// CreditSaleDetailRepository defines data operations for per-customer credit
// entries attached to a cash record
type CreditSaleDetailRepository interface {
	Create(ctx context.Context, detail *entity.CreditSaleDetail) error
	CreateBatch(ctx context.Context, details []entity.CreditSaleDetail) error
	GetByRecordID(ctx context.Context, recordID uuid.UUID) ([]entity.CreditSaleDetail, error)
	DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error
}
