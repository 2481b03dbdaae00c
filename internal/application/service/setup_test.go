package service

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/infrastructure/database"
	"github.com/petrodesk/station-api/internal/infrastructure/repository"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// The named shared-cache DSN keeps all of gorm's pooled connections on the
// same database for the lifetime of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newReconciliationService wires a reconciliation service onto real
// repositories backed by the given database.
func newReconciliationService(db *gorm.DB) *ReconciliationService {
	return NewReconciliationService(
		repository.NewTxManager(db),
		repository.NewCashRecordRepository(db),
		repository.NewCreditSaleDetailRepository(db),
		repository.NewSaleRepository(db),
		repository.NewCreditSaleRepository(db),
		repository.NewCreditTransactionRepository(db),
		repository.NewCreditCustomerRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewUserRepository(db),
		newTestLogger(),
	)
}

func newCreditService(db *gorm.DB) *CreditService {
	return NewCreditService(
		repository.NewTxManager(db),
		repository.NewCreditCustomerRepository(db),
		repository.NewCreditSaleRepository(db),
		repository.NewCreditTransactionRepository(db),
		repository.NewSaleRepository(db),
	)
}

func newSaleService(db *gorm.DB) *SaleService {
	return NewSaleService(
		repository.NewTxManager(db),
		repository.NewSaleRepository(db),
		repository.NewSaleItemRepository(db),
		repository.NewProductRepository(db),
		repository.NewTankRepository(db),
		repository.NewCreditCustomerRepository(db),
		repository.NewCreditSaleRepository(db),
		repository.NewCreditTransactionRepository(db),
		repository.NewSettingsRepository(db),
	)
}

func newCashRecordService(db *gorm.DB) *CashRecordService {
	return NewCashRecordService(
		repository.NewTxManager(db),
		repository.NewCashRecordRepository(db),
		repository.NewCreditSaleDetailRepository(db),
		repository.NewStaffRepository(db),
		repository.NewCreditCustomerRepository(db),
	)
}

func seedStaff(t *testing.T, db *gorm.DB) *entity.Staff {
	t.Helper()
	staff := &entity.Staff{FirstName: "Ada", LastName: "Odhiambo", Position: "attendant", Active: true}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func seedUser(t *testing.T, db *gorm.DB, role enum.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     fmt.Sprintf("%s@station.test", uuid.NewString()[:8]),
		Password:  "hashed",
		Role:      role,
		Active:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, balance decimal.Decimal) *entity.CreditCustomer {
	t.Helper()
	customer := &entity.CreditCustomer{Name: name, CurrentBalance: balance, Active: true}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// seedSettlement creates a pending cash record with itemized credit entries.
// amounts maps customer IDs to their share of the credit total.
func seedSettlement(t *testing.T, db *gorm.DB, staffID uuid.UUID, recordDate time.Time, amounts map[uuid.UUID]decimal.Decimal) *entity.DailyCashRecord {
	t.Helper()

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	record := &entity.DailyCashRecord{
		StaffID:         staffID,
		RecordDate:      recordDate,
		CollectedCash:   decimal.NewFromInt(5000),
		CollectedCredit: total,
		Status:          enum.RecordStatusPending,
	}
	require.NoError(t, db.Create(record).Error)

	for customerID, amount := range amounts {
		detail := &entity.CreditSaleDetail{RecordID: record.ID, CustomerID: customerID, Amount: amount}
		require.NoError(t, db.Create(detail).Error)
	}
	return record
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock, price decimal.Decimal) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:         name,
		Code:         "PROD-" + uuid.NewString()[:8],
		Category:     enum.ProductCategoryFuel,
		Unit:         "litre",
		SellingPrice: price,
		Stock:        stock,
		Active:       true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testPagination() *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: 1, PerPage: 20}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func reloadCustomer(t *testing.T, db *gorm.DB, id uuid.UUID) *entity.CreditCustomer {
	t.Helper()
	var customer entity.CreditCustomer
	require.NoError(t, db.First(&customer, "id = ?", id).Error)
	return &customer
}
