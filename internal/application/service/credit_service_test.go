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
	"gorm.io/gorm"
)

// seedReceivable opens a credit sale against the customer without touching
// the stored balance; callers set the balance through seedCustomer.
func seedReceivable(t *testing.T, db *gorm.DB, customer *entity.CreditCustomer, amount decimal.Decimal, dueDate time.Time) *entity.CreditSale {
	t.Helper()

	creditStatus := enum.CreditStatusPending
	sale := &entity.Sale{
		InvoiceNo:     utils.GenerateInvoiceNo(),
		SaleDate:      dueDate.AddDate(0, 0, -30),
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		PaymentStatus: enum.PaymentStatusCredit,
		TotalAmount:   amount,
		NetAmount:     amount,
		DueDate:       &dueDate,
		CreditStatus:  &creditStatus,
	}
	require.NoError(t, db.Create(sale).Error)

	creditSale := &entity.CreditSale{
		CustomerID:      customer.ID,
		SaleID:          sale.ID,
		CreditAmount:    amount,
		RemainingAmount: amount,
		DueDate:         dueDate,
		Status:          enum.CreditStatusPending,
	}
	require.NoError(t, db.Create(creditSale).Error)
	return creditSale
}

func TestRecordPaymentSettlesOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Omondi Freight", decimal.NewFromInt(300))
	older := seedReceivable(t, db, customer, decimal.NewFromInt(150), time.Now().AddDate(0, 0, 5))
	newer := seedReceivable(t, db, customer, decimal.NewFromInt(150), time.Now().AddDate(0, 0, 20))

	txn, err := svc.RecordPayment(ctx, &RecordPaymentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(200),
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionTypePayment, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(100)))

	var first, second entity.CreditSale
	require.NoError(t, db.First(&first, "id = ?", older.ID).Error)
	require.NoError(t, db.First(&second, "id = ?", newer.ID).Error)

	assert.Equal(t, enum.CreditStatusPaid, first.Status)
	assert.True(t, first.RemainingAmount.IsZero())
	assert.Equal(t, enum.CreditStatusPartial, second.Status)
	assert.True(t, second.RemainingAmount.Equal(decimal.NewFromInt(100)))

	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(100)))
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)

	customer := seedCustomer(t, db, "Wafula Motors", decimal.NewFromInt(100))

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(150),
		CreatedBy:  uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(100)))
}

func TestRecordPaymentDuplicateReference(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Chebet Stores", decimal.NewFromInt(500))
	seedReceivable(t, db, customer, decimal.NewFromInt(500), time.Now().AddDate(0, 0, 10))

	input := &RecordPaymentInput{
		CustomerID:  customer.ID,
		Amount:      decimal.NewFromInt(100),
		ReferenceNo: "MPESA-XYZ123",
		CreatedBy:   uuid.New(),
	}
	_, err := svc.RecordPayment(ctx, input)
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Only the first payment moved the balance
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(400)))
}

func TestRecordAdjustmentRequiresNotes(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)

	customer := seedCustomer(t, db, "Mutua Wholesale", decimal.NewFromInt(200))

	_, err := svc.RecordAdjustment(context.Background(), &RecordAdjustmentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(-50),
		CreatedBy:  uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordAdjustmentAppliesSignedAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Kilonzo Garage", decimal.NewFromInt(200))

	txn, err := svc.RecordAdjustment(ctx, &RecordAdjustmentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(-50),
		Notes:      "Invoice disputed and waived",
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionTypeAdjustment, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(150)))
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(150)))
}

func TestDeleteCustomerWithOutstandingBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)

	customer := seedCustomer(t, db, "Owino Dairy", decimal.NewFromInt(75))

	err := svc.DeleteCustomer(context.Background(), customer.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestGetCustomerLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newCreditService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Njeri Deliveries", decimal.NewFromInt(500))
	seedReceivable(t, db, customer, decimal.NewFromInt(500), time.Now().AddDate(0, 0, 15))

	_, err := svc.RecordPayment(ctx, &RecordPaymentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(200),
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)
	_, err = svc.RecordAdjustment(ctx, &RecordAdjustmentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(25),
		Notes:      "Interest on overdue balance",
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)

	result, err := svc.GetCustomerLedger(ctx, customer.ID, testPagination())
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.EqualValues(t, 2, result.Pagination.Total)
}
