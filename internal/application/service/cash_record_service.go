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

// CashRecordService handles daily cash settlement operations
type CashRecordService struct {
	txManager      repository.TxManager
	cashRecordRepo repository.CashRecordRepository
	detailRepo     repository.CreditSaleDetailRepository
	staffRepo      repository.StaffRepository
	customerRepo   repository.CreditCustomerRepository
}

// NewCashRecordService creates a new cash record service
func NewCashRecordService(
	txManager repository.TxManager,
	cashRecordRepo repository.CashRecordRepository,
	detailRepo repository.CreditSaleDetailRepository,
	staffRepo repository.StaffRepository,
	customerRepo repository.CreditCustomerRepository,
) *CashRecordService {
	return &CashRecordService{
		txManager:      txManager,
		cashRecordRepo: cashRecordRepo,
		detailRepo:     detailRepo,
		staffRepo:      staffRepo,
		customerRepo:   customerRepo,
	}
}

// CreditEntryInput is one customer's share of the shift's credit
type CreditEntryInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
}

// CreateCashRecordInput represents the create settlement input
type CreateCashRecordInput struct {
	StaffID         uuid.UUID
	RecordDate      time.Time
	CollectedCash   decimal.Decimal
	CollectedCard   decimal.Decimal
	CollectedCredit decimal.Decimal
	CreditEntries   []CreditEntryInput
	Notes           string
}

// CreateCashRecord creates a settlement together with its itemized credit
// entries. The entry amounts must add up to the declared credit total.
func (s *CashRecordService) CreateCashRecord(ctx context.Context, input *CreateCashRecordInput) (*entity.DailyCashRecord, error) {
	staff, err := s.staffRepo.GetByID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}

	if input.CollectedCash.IsNegative() || input.CollectedCard.IsNegative() || input.CollectedCredit.IsNegative() {
		return nil, apperror.NewBadRequestError("Collected amounts cannot be negative")
	}

	if input.CollectedCredit.IsPositive() {
		if len(input.CreditEntries) == 0 {
			return nil, apperror.NewBadRequestError("Credit collections require per-customer entries")
		}
		sum := decimal.Zero
		for _, e := range input.CreditEntries {
			if !e.Amount.IsPositive() {
				return nil, apperror.NewBadRequestError("Credit entry amounts must be positive")
			}
			customer, err := s.customerRepo.GetByID(ctx, e.CustomerID)
			if err != nil {
				return nil, err
			}
			if customer == nil {
				return nil, apperror.NewNotFoundError("Credit customer")
			}
			sum = sum.Add(e.Amount)
		}
		if !sum.Equal(input.CollectedCredit) {
			return nil, apperror.NewBadRequestError("Credit entries do not add up to the collected credit total")
		}
	}

	record := &entity.DailyCashRecord{
		StaffID:         input.StaffID,
		RecordDate:      input.RecordDate,
		CollectedCash:   input.CollectedCash,
		CollectedCard:   input.CollectedCard,
		CollectedCredit: input.CollectedCredit,
		Status:          enum.RecordStatusPending,
		Notes:           input.Notes,
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.cashRecordRepo.Create(ctx, record); err != nil {
			return err
		}
		if len(input.CreditEntries) == 0 {
			return nil
		}
		details := make([]entity.CreditSaleDetail, 0, len(input.CreditEntries))
		for _, e := range input.CreditEntries {
			details = append(details, entity.CreditSaleDetail{
				RecordID:   record.ID,
				CustomerID: e.CustomerID,
				Amount:     e.Amount,
			})
		}
		return s.detailRepo.CreateBatch(ctx, details)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetCashRecord retrieves a settlement with its staff and credit entries
func (s *CashRecordService) GetCashRecord(ctx context.Context, id uuid.UUID) (*entity.DailyCashRecord, error) {
	record, err := s.cashRecordRepo.GetWithStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Settlement record")
	}
	return record, nil
}

// UpdateCashRecordInput represents fields that may change before reconciliation
type UpdateCashRecordInput struct {
	CollectedCash   *decimal.Decimal
	CollectedCard   *decimal.Decimal
	CollectedCredit *decimal.Decimal
	CreditEntries   []CreditEntryInput
	Notes           *string
}

// UpdateCashRecord updates a pending settlement. Reconciled or closed
// settlements are immutable because downstream artifacts reference them.
func (s *CashRecordService) UpdateCashRecord(ctx context.Context, id uuid.UUID, input *UpdateCashRecordInput) (*entity.DailyCashRecord, error) {
	record, err := s.cashRecordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Settlement record")
	}
	if record.Status != enum.RecordStatusPending {
		return nil, apperror.NewConflictError("Only pending settlements can be updated")
	}

	if input.CollectedCash != nil {
		record.CollectedCash = *input.CollectedCash
	}
	if input.CollectedCard != nil {
		record.CollectedCard = *input.CollectedCard
	}
	if input.CollectedCredit != nil {
		record.CollectedCredit = *input.CollectedCredit
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}

	if record.CollectedCredit.IsPositive() && input.CreditEntries != nil {
		sum := decimal.Zero
		for _, e := range input.CreditEntries {
			sum = sum.Add(e.Amount)
		}
		if !sum.Equal(record.CollectedCredit) {
			return nil, apperror.NewBadRequestError("Credit entries do not add up to the collected credit total")
		}
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.cashRecordRepo.Update(ctx, record); err != nil {
			return err
		}
		if input.CreditEntries == nil {
			return nil
		}
		if err := s.detailRepo.DeleteByRecordID(ctx, record.ID); err != nil {
			return err
		}
		if len(input.CreditEntries) == 0 {
			return nil
		}
		details := make([]entity.CreditSaleDetail, 0, len(input.CreditEntries))
		for _, e := range input.CreditEntries {
			details = append(details, entity.CreditSaleDetail{
				RecordID:   record.ID,
				CustomerID: e.CustomerID,
				Amount:     e.Amount,
			})
		}
		return s.detailRepo.CreateBatch(ctx, details)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteCashRecord removes a pending settlement and its credit entries
func (s *CashRecordService) DeleteCashRecord(ctx context.Context, id uuid.UUID) error {
	record, err := s.cashRecordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NewNotFoundError("Settlement record")
	}
	if record.Status != enum.RecordStatusPending {
		return apperror.NewConflictError("Only pending settlements can be deleted")
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.detailRepo.DeleteByRecordID(ctx, id); err != nil {
			return err
		}
		return s.cashRecordRepo.Delete(ctx, id)
	})
}

// ListCashRecords retrieves settlements with filtering and pagination
func (s *CashRecordService) ListCashRecords(ctx context.Context, params *repository.CashRecordFilterParams) (*pagination.PaginatedResult[entity.DailyCashRecord], error) {
	records, total, err := s.cashRecordRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(records,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
