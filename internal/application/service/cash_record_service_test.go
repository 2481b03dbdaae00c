package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCashRecordPersistsCreditEntries(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	first := seedCustomer(t, db, "Customer A", decimal.Zero)
	second := seedCustomer(t, db, "Customer B", decimal.Zero)

	record, err := svc.CreateCashRecord(ctx, &CreateCashRecordInput{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCash:   decimal.NewFromInt(4000),
		CollectedCard:   decimal.NewFromInt(1500),
		CollectedCredit: decimal.NewFromInt(500),
		CreditEntries: []CreditEntryInput{
			{CustomerID: first.ID, Amount: decimal.NewFromInt(300)},
			{CustomerID: second.ID, Amount: decimal.NewFromInt(200)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.RecordStatusPending, record.Status)

	var details []entity.CreditSaleDetail
	require.NoError(t, db.Find(&details, "record_id = ?", record.ID).Error)
	assert.Len(t, details, 2)
}

func TestCreateCashRecordEntriesMustSumToCredit(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)

	staff := seedStaff(t, db)
	customer := seedCustomer(t, db, "Customer A", decimal.Zero)

	_, err := svc.CreateCashRecord(context.Background(), &CreateCashRecordInput{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCredit: decimal.NewFromInt(500),
		CreditEntries: []CreditEntryInput{
			{CustomerID: customer.ID, Amount: decimal.NewFromInt(450)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.EqualValues(t, 0, countRows(t, db, &entity.DailyCashRecord{}))
}

func TestCreateCashRecordRequiresEntriesForCredit(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)

	staff := seedStaff(t, db)

	_, err := svc.CreateCashRecord(context.Background(), &CreateCashRecordInput{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCredit: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateCashRecordUnknownStaff(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)

	_, err := svc.CreateCashRecord(context.Background(), &CreateCashRecordInput{
		StaffID:       uuid.New(),
		RecordDate:    time.Now(),
		CollectedCash: decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateReconciledSettlementRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	record := &entity.DailyCashRecord{
		StaffID:       staff.ID,
		RecordDate:    time.Now(),
		CollectedCash: decimal.NewFromInt(2000),
		Status:        enum.RecordStatusReconciled,
	}
	require.NoError(t, db.Create(record).Error)

	newCash := decimal.NewFromInt(2500)
	_, err := svc.UpdateCashRecord(ctx, record.ID, &UpdateCashRecordInput{CollectedCash: &newCash})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	err = svc.DeleteCashRecord(ctx, record.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateCashRecordReplacesEntries(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	first := seedCustomer(t, db, "Customer A", decimal.Zero)
	second := seedCustomer(t, db, "Customer B", decimal.Zero)

	record, err := svc.CreateCashRecord(ctx, &CreateCashRecordInput{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCredit: decimal.NewFromInt(500),
		CreditEntries: []CreditEntryInput{
			{CustomerID: first.ID, Amount: decimal.NewFromInt(500)},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpdateCashRecord(ctx, record.ID, &UpdateCashRecordInput{
		CreditEntries: []CreditEntryInput{
			{CustomerID: first.ID, Amount: decimal.NewFromInt(200)},
			{CustomerID: second.ID, Amount: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)

	var details []entity.CreditSaleDetail
	require.NoError(t, db.Find(&details, "record_id = ?", record.ID).Error)
	assert.Len(t, details, 2)
}

func TestDeleteCashRecordRemovesEntries(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	customer := seedCustomer(t, db, "Customer A", decimal.Zero)

	record, err := svc.CreateCashRecord(ctx, &CreateCashRecordInput{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCredit: decimal.NewFromInt(250),
		CreditEntries: []CreditEntryInput{
			{CustomerID: customer.ID, Amount: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCashRecord(ctx, record.ID))
	assert.EqualValues(t, 0, countRows(t, db, &entity.CreditSaleDetail{}))
}

func TestListCashRecordsFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newCashRecordService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	for _, status := range []enum.RecordStatus{enum.RecordStatusPending, enum.RecordStatusPending, enum.RecordStatusReconciled} {
		require.NoError(t, db.Create(&entity.DailyCashRecord{
			StaffID:       staff.ID,
			RecordDate:    time.Now(),
			CollectedCash: decimal.NewFromInt(1000),
			Status:        status,
		}).Error)
	}

	pending := enum.RecordStatusPending
	result, err := svc.ListCashRecords(ctx, &repository.CashRecordFilterParams{
		Pagination: testPagination(),
		Status:     &pending,
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.EqualValues(t, 2, result.Pagination.Total)
}
