package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSaleDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(1000), decimal.NewFromInt(180))

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromFloat(25.5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.NetAmount.Equal(decimal.NewFromFloat(4590)))
	require.Len(t, sale.Items, 1)

	var fresh entity.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.True(t, fresh.Stock.Equal(decimal.NewFromFloat(974.5)), "stock = %s", fresh.Stock)
}

func TestCreateCreditSaleOpensReceivable(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(500), decimal.NewFromInt(200))
	customer := seedCustomer(t, db, "Maina Couriers", decimal.NewFromInt(1000))

	saleDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		CustomerID:    &customer.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCredit,
		SaleDate:      saleDate,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.DueDate)
	assert.Equal(t, saleDate.AddDate(0, 0, 30).Format("2006-01-02"), sale.DueDate.Format("2006-01-02"))

	var creditSale entity.CreditSale
	require.NoError(t, db.First(&creditSale, "sale_id = ?", sale.ID).Error)
	assert.True(t, creditSale.RemainingAmount.Equal(decimal.NewFromInt(2000)))

	var txn entity.CreditTransaction
	require.NoError(t, db.First(&txn, "reference_no = ?", sale.InvoiceNo).Error)
	assert.Equal(t, enum.TransactionTypeSale, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(3000)))

	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(3000)))
}

func TestCreateCreditSaleExceedingLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(500), decimal.NewFromInt(200))
	customer := seedCustomer(t, db, "Limited Ltd", decimal.NewFromInt(900))
	require.NoError(t, db.Model(customer).Update("credit_limit", decimal.NewFromInt(1000)).Error)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        user.ID,
		CustomerID:    &customer.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCredit,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrCreditLimitExceeded.Message, apperror.GetAppError(err).Message)

	// Nothing was written
	assert.EqualValues(t, 0, countRows(t, db, &entity.Sale{}))
	assert.True(t, reloadCustomer(t, db, customer.ID).CurrentBalance.Equal(decimal.NewFromInt(900)))
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Kerosene", decimal.NewFromInt(5), decimal.NewFromInt(150))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)

	// Sale and items rolled back together with the stock guard failure
	assert.EqualValues(t, 0, countRows(t, db, &entity.Sale{}))
	assert.EqualValues(t, 0, countRows(t, db, &entity.SaleItem{}))

	var fresh entity.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.True(t, fresh.Stock.Equal(decimal.NewFromInt(5)))
}

func TestVoidSaleRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(100), decimal.NewFromInt(180))

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.VoidSale(ctx, sale.ID))

	var fresh entity.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.True(t, fresh.Stock.Equal(decimal.NewFromInt(100)))

	var reloaded entity.Sale
	require.NoError(t, db.First(&reloaded, "id = ?", sale.ID).Error)
	assert.True(t, reloaded.Voided)

	// Voiding twice is rejected
	err = svc.VoidSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestVoidCreditSaleWithReceivableBlocked(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(100), decimal.NewFromInt(200))
	customer := seedCustomer(t, db, "Kamande Transport", decimal.Zero)

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		CustomerID:    &customer.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCredit,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	err = svc.VoidSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateFuelSaleDrainsTank(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(5000), decimal.NewFromInt(180))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(20000), decimal.NewFromInt(5000))

	_, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	var freshProduct entity.Product
	require.NoError(t, db.First(&freshProduct, "id = ?", product.ID).Error)
	assert.True(t, freshProduct.Stock.Equal(decimal.NewFromInt(4900)))

	var freshTank entity.Tank
	require.NoError(t, db.First(&freshTank, "id = ?", tank.ID).Error)
	assert.True(t, freshTank.CurrentLevel.Equal(decimal.NewFromInt(4900)), "level = %s", freshTank.CurrentLevel)
}

func TestCreateFuelSaleSpansTanks(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(1000), decimal.NewFromInt(200))
	fuller := seedTank(t, db, product.ID, decimal.NewFromInt(1000), decimal.NewFromInt(600))
	emptier := seedTank(t, db, product.ID, decimal.NewFromInt(1000), decimal.NewFromInt(300))

	_, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(700)},
		},
	})
	require.NoError(t, err)

	// The fullest tank is drained first, the rest comes from the next one
	var freshFuller, freshEmptier entity.Tank
	require.NoError(t, db.First(&freshFuller, "id = ?", fuller.ID).Error)
	require.NoError(t, db.First(&freshEmptier, "id = ?", emptier.ID).Error)
	assert.True(t, freshFuller.CurrentLevel.IsZero(), "level = %s", freshFuller.CurrentLevel)
	assert.True(t, freshEmptier.CurrentLevel.Equal(decimal.NewFromInt(200)), "level = %s", freshEmptier.CurrentLevel)
}

func TestCreateFuelSaleTanksDryRolledBack(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Kerosene", decimal.NewFromInt(500), decimal.NewFromInt(150))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(1000), decimal.NewFromInt(50))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(100)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Sale, stock and the partial tank draw all rolled back together
	assert.EqualValues(t, 0, countRows(t, db, &entity.Sale{}))

	var freshProduct entity.Product
	require.NoError(t, db.First(&freshProduct, "id = ?", product.ID).Error)
	assert.True(t, freshProduct.Stock.Equal(decimal.NewFromInt(500)))

	var freshTank entity.Tank
	require.NoError(t, db.First(&freshTank, "id = ?", tank.ID).Error)
	assert.True(t, freshTank.CurrentLevel.Equal(decimal.NewFromInt(50)))
}

func TestVoidFuelSaleReturnsFuelToTank(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	ctx := context.Background()

	user := seedUser(t, db, enum.RoleAttendant)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(1000), decimal.NewFromInt(180))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(10000), decimal.NewFromInt(500))

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeFuel,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.VoidSale(ctx, sale.ID))

	var freshTank entity.Tank
	require.NoError(t, db.First(&freshTank, "id = ?", tank.ID).Error)
	assert.True(t, freshTank.CurrentLevel.Equal(decimal.NewFromInt(500)), "level = %s", freshTank.CurrentLevel)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	user := seedUser(t, db, enum.RoleAttendant)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        user.ID,
		SaleType:      enum.SaleTypeShop,
		PaymentStatus: enum.PaymentStatusCash,
		Items: []SaleItemInput{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
