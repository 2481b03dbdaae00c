package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileSettlementCreatesArtifacts(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleManager)
	customer := seedCustomer(t, db, "Kamau Transport", decimal.NewFromInt(1000))
	recordDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	record := seedSettlement(t, db, staff.ID, recordDate, map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(250),
	})

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Messages)

	var sale entity.Sale
	invoiceNo := utils.SettlementInvoiceNo(record.ID, customer.ID)
	require.NoError(t, db.First(&sale, "invoice_no = ?", invoiceNo).Error)
	assert.True(t, sale.NetAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, enum.PaymentStatusCredit, sale.PaymentStatus)
	assert.Equal(t, record.ID.String(), sale.ReferenceNo)
	require.NotNil(t, sale.DueDate)
	assert.Equal(t, recordDate.AddDate(0, 0, 30).Format("2006-01-02"), sale.DueDate.Format("2006-01-02"))

	var creditSale entity.CreditSale
	require.NoError(t, db.First(&creditSale, "sale_id = ?", sale.ID).Error)
	assert.True(t, creditSale.RemainingAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, enum.CreditStatusPending, creditSale.Status)

	var txn entity.CreditTransaction
	require.NoError(t, db.First(&txn, "reference_no = ? AND customer_id = ?", record.ID.String(), customer.ID).Error)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(250)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1250)), "balance_after = %s", txn.BalanceAfter)
	require.NotNil(t, txn.SaleID)
	assert.Equal(t, sale.ID, *txn.SaleID)
	assert.Equal(t, actor.ID, txn.CreatedBy)

	fresh := reloadCustomer(t, db, customer.ID)
	assert.True(t, fresh.CurrentBalance.Equal(decimal.NewFromInt(1250)))

	var reloaded entity.DailyCashRecord
	require.NoError(t, db.First(&reloaded, "id = ?", record.ID).Error)
	assert.Equal(t, enum.RecordStatusReconciled, reloaded.Status)
}

func TestReconcileSettlementIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Wanjiru Dairies", decimal.Zero)
	record := seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(400),
	})

	_, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)

	second, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Contains(t, second.Messages, "Settlement already consistent, nothing to repair")

	assert.EqualValues(t, 1, countRows(t, db, &entity.Sale{}))
	assert.EqualValues(t, 1, countRows(t, db, &entity.CreditSale{}))
	assert.EqualValues(t, 1, countRows(t, db, &entity.CreditTransaction{}))

	fresh := reloadCustomer(t, db, customer.ID)
	assert.True(t, fresh.CurrentBalance.Equal(decimal.NewFromInt(400)),
		"balance moved past the credit amount on re-run: %s", fresh.CurrentBalance)
}

func TestReconcileSettlementMultipleCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleManager)
	first := seedCustomer(t, db, "Otieno Logistics", decimal.Zero)
	second := seedCustomer(t, db, "Mwangi Tours", decimal.NewFromInt(100))
	record := seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		first.ID:  decimal.NewFromInt(300),
		second.ID: decimal.NewFromInt(200),
	})

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.EqualValues(t, 2, countRows(t, db, &entity.Sale{}))
	assert.EqualValues(t, 2, countRows(t, db, &entity.CreditSale{}))
	assert.EqualValues(t, 2, countRows(t, db, &entity.CreditTransaction{}))

	var firstSale, secondSale entity.Sale
	require.NoError(t, db.First(&firstSale, "invoice_no = ?", utils.SettlementInvoiceNo(record.ID, first.ID)).Error)
	require.NoError(t, db.First(&secondSale, "invoice_no = ?", utils.SettlementInvoiceNo(record.ID, second.ID)).Error)
	assert.True(t, firstSale.NetAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, secondSale.NetAmount.Equal(decimal.NewFromInt(200)))

	assert.True(t, reloadCustomer(t, db, first.ID).CurrentBalance.Equal(decimal.NewFromInt(300)))
	assert.True(t, reloadCustomer(t, db, second.ID).CurrentBalance.Equal(decimal.NewFromInt(300)))
}

func TestReconcileSettlementLegacyCustomerField(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Njoroge Hauliers", decimal.Zero)

	// Record predating itemized entries: single customer on the record itself
	record := &entity.DailyCashRecord{
		StaffID:          staff.ID,
		RecordDate:       time.Now(),
		CollectedCredit:  decimal.NewFromInt(600),
		CreditCustomerID: &customer.ID,
		Status:           enum.RecordStatusPending,
	}
	require.NoError(t, db.Create(record).Error)

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	var sale entity.Sale
	require.NoError(t, db.First(&sale, "invoice_no = ?", utils.SettlementInvoiceNo(record.ID, customer.ID)).Error)
	assert.True(t, sale.NetAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(600)))
}

func TestReconcileSettlementReusesLegacyInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Achieng Traders", decimal.Zero)
	record := seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(150),
	})

	// A sale already exists under the old single-customer invoice format
	dueDate := time.Now().AddDate(0, 0, 30)
	creditStatus := enum.CreditStatusPending
	legacy := &entity.Sale{
		InvoiceNo:     utils.LegacySettlementInvoiceNo(record.ID),
		SaleDate:      time.Now(),
		UserID:        actor.ID,
		CustomerID:    &customer.ID,
		PaymentStatus: enum.PaymentStatusCredit,
		TotalAmount:   decimal.NewFromInt(150),
		NetAmount:     decimal.NewFromInt(150),
		DueDate:       &dueDate,
		CreditStatus:  &creditStatus,
		ReferenceNo:   record.ID.String(),
	}
	require.NoError(t, db.Create(legacy).Error)

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// The legacy sale was recognized, not duplicated
	assert.EqualValues(t, 1, countRows(t, db, &entity.Sale{}))

	var creditSale entity.CreditSale
	require.NoError(t, db.First(&creditSale, "sale_id = ?", legacy.ID).Error)
	assert.True(t, creditSale.CreditAmount.Equal(decimal.NewFromInt(150)))
}

func TestReconcileSettlementLegacySaleWithoutDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Otieno Hauliers", decimal.Zero)
	recordDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	record := seedSettlement(t, db, staff.ID, recordDate, map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(250),
	})

	// Hand-entered legacy sales may carry no due date at all
	creditStatus := enum.CreditStatusPending
	legacy := &entity.Sale{
		InvoiceNo:     utils.LegacySettlementInvoiceNo(record.ID),
		SaleDate:      recordDate,
		UserID:        actor.ID,
		CustomerID:    &customer.ID,
		PaymentStatus: enum.PaymentStatusCredit,
		TotalAmount:   decimal.NewFromInt(250),
		NetAmount:     decimal.NewFromInt(250),
		CreditStatus:  &creditStatus,
		ReferenceNo:   record.ID.String(),
	}
	require.NoError(t, db.Create(legacy).Error)

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// The receivable falls back to the record date plus the credit term
	var creditSale entity.CreditSale
	require.NoError(t, db.First(&creditSale, "sale_id = ?", legacy.ID).Error)
	assert.Equal(t, recordDate.AddDate(0, 0, 30).Format("2006-01-02"), creditSale.DueDate.Format("2006-01-02"))
}

func TestReconcileSettlementRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Kiprotich Farms", decimal.Zero)
	record := seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(500),
	})

	// Second entry points at a customer that does not exist, which fails the
	// run after the first entry has already written its artifacts.
	ghost := &entity.CreditSaleDetail{RecordID: record.ID, CustomerID: uuid.New(), Amount: decimal.NewFromInt(100)}
	require.NoError(t, db.Create(ghost).Error)
	require.NoError(t, db.Model(record).Update("collected_credit", decimal.NewFromInt(600)).Error)

	_, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.Error(t, err)

	// Everything from the partial run was rolled back
	assert.EqualValues(t, 0, countRows(t, db, &entity.Sale{}))
	assert.EqualValues(t, 0, countRows(t, db, &entity.CreditSale{}))
	assert.EqualValues(t, 0, countRows(t, db, &entity.CreditTransaction{}))
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.IsZero())

	var reloaded entity.DailyCashRecord
	require.NoError(t, db.First(&reloaded, "id = ?", record.ID).Error)
	assert.Equal(t, enum.RecordStatusPending, reloaded.Status)
}

func TestReconcileSettlementWithoutCredit(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	record := &entity.DailyCashRecord{
		StaffID:       staff.ID,
		RecordDate:    time.Now(),
		CollectedCash: decimal.NewFromInt(8000),
		Status:        enum.RecordStatusPending,
	}
	require.NoError(t, db.Create(record).Error)

	result, err := svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Messages[0], "no credit collections")

	assert.EqualValues(t, 0, countRows(t, db, &entity.Sale{}))

	var reloaded entity.DailyCashRecord
	require.NoError(t, db.First(&reloaded, "id = ?", record.ID).Error)
	assert.Equal(t, enum.RecordStatusPending, reloaded.Status)
}

func TestReconcileSettlementNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)

	_, err := svc.ReconcileSettlement(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestReconcileSettlementWithoutAttribution(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	record := &entity.DailyCashRecord{
		StaffID:         staff.ID,
		RecordDate:      time.Now(),
		CollectedCredit: decimal.NewFromInt(300),
		Status:          enum.RecordStatusPending,
	}
	require.NoError(t, db.Create(record).Error)

	_, err := svc.ReconcileSettlement(context.Background(), record.ID, actor.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestReconcileAllSweepsPendingSettlements(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	admin := seedUser(t, db, enum.RoleAdmin)
	first := seedCustomer(t, db, "Customer A", decimal.Zero)
	second := seedCustomer(t, db, "Customer B", decimal.Zero)

	seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		first.ID: decimal.NewFromInt(100),
	})
	seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		second.ID: decimal.NewFromInt(200),
	})
	// Cash-only settlement is not swept
	require.NoError(t, db.Create(&entity.DailyCashRecord{
		StaffID:       staff.ID,
		RecordDate:    time.Now(),
		CollectedCash: decimal.NewFromInt(1000),
		Status:        enum.RecordStatusPending,
	}).Error)

	// uuid.Nil actor resolves to the default admin, as the nightly job runs
	results, err := svc.ReconcileAll(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success)
	}

	var txns []entity.CreditTransaction
	require.NoError(t, db.Find(&txns).Error)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, admin.ID, txn.CreatedBy)
	}
}

func TestReconcileAllWithoutAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)

	_, err := svc.ReconcileAll(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSyncStatusReportsMissingArtifacts(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)
	ctx := context.Background()

	staff := seedStaff(t, db)
	actor := seedUser(t, db, enum.RoleAdmin)
	customer := seedCustomer(t, db, "Baraka Supplies", decimal.Zero)
	record := seedSettlement(t, db, staff.ID, time.Now(), map[uuid.UUID]decimal.Decimal{
		customer.ID: decimal.NewFromInt(250),
	})

	before, err := svc.SyncStatus(ctx, record.ID)
	require.NoError(t, err)
	assert.False(t, before.Consistent)
	require.Len(t, before.Entries, 1)
	assert.False(t, before.Entries[0].SaleExists)
	assert.False(t, before.Entries[0].ReceivableExists)
	assert.False(t, before.Entries[0].LedgerExists)
	assert.Equal(t, "Baraka Supplies", before.Entries[0].CustomerName)

	_, err = svc.ReconcileSettlement(ctx, record.ID, actor.ID)
	require.NoError(t, err)

	after, err := svc.SyncStatus(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, after.Consistent)
	require.Len(t, after.Entries, 1)
	assert.True(t, after.Entries[0].SaleExists)
	assert.True(t, after.Entries[0].ReceivableExists)
	assert.True(t, after.Entries[0].LedgerExists)
	assert.True(t, after.Entries[0].LedgerLinked)
	assert.Equal(t, enum.RecordStatusReconciled, after.Status)
}

func TestSyncStatusNoCreditIsConsistent(t *testing.T) {
	db := newTestDB(t)
	svc := newReconciliationService(db)

	staff := seedStaff(t, db)
	record := &entity.DailyCashRecord{
		StaffID:       staff.ID,
		RecordDate:    time.Now(),
		CollectedCash: decimal.NewFromInt(3000),
		Status:        enum.RecordStatusPending,
	}
	require.NoError(t, db.Create(record).Error)

	report, err := svc.SyncStatus(context.Background(), record.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Empty(t, report.Entries)
}
