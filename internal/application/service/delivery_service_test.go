package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/infrastructure/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDeliveryService(db *gorm.DB) *DeliveryService {
	return NewDeliveryService(
		repository.NewTxManager(db),
		repository.NewDeliveryRepository(db),
		repository.NewSupplierRepository(db),
		repository.NewTankRepository(db),
		repository.NewProductRepository(db),
	)
}

func seedSupplier(t *testing.T, db *gorm.DB) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{Name: "Vivo Energy"}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedTank(t *testing.T, db *gorm.DB, productID uuid.UUID, capacity, level decimal.Decimal) *entity.Tank {
	t.Helper()
	tank := &entity.Tank{
		Name:         "Tank " + uuid.NewString()[:8],
		ProductID:    productID,
		Capacity:     capacity,
		CurrentLevel: level,
	}
	require.NoError(t, db.Create(tank).Error)
	return tank
}

func TestReceiveDeliveryRaisesTankAndStock(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(2000), decimal.NewFromInt(180))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(20000), decimal.NewFromInt(3000))
	receiver := seedUser(t, db, enum.RoleManager)

	delivery, err := svc.CreateDelivery(ctx, &CreateDeliveryInput{
		SupplierID:   supplier.ID,
		TankID:       tank.ID,
		DeliveryDate: time.Now(),
		Quantity:     decimal.NewFromInt(5000),
		UnitCost:     decimal.NewFromFloat(152.50),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.DeliveryStatusPending, delivery.Status)
	assert.True(t, delivery.TotalCost.Equal(decimal.NewFromInt(762500)))

	received, err := svc.ReceiveDelivery(ctx, delivery.ID, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.DeliveryStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedBy)
	assert.Equal(t, receiver.ID, *received.ReceivedBy)

	var freshTank entity.Tank
	require.NoError(t, db.First(&freshTank, "id = ?", tank.ID).Error)
	assert.True(t, freshTank.CurrentLevel.Equal(decimal.NewFromInt(8000)))

	var freshProduct entity.Product
	require.NoError(t, db.First(&freshProduct, "id = ?", product.ID).Error)
	assert.True(t, freshProduct.Stock.Equal(decimal.NewFromInt(7000)))
}

func TestReceiveDeliveryTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(1000), decimal.NewFromInt(200))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(10000), decimal.NewFromInt(1000))
	receiver := seedUser(t, db, enum.RoleManager)

	delivery, err := svc.CreateDelivery(ctx, &CreateDeliveryInput{
		SupplierID:   supplier.ID,
		TankID:       tank.ID,
		DeliveryDate: time.Now(),
		Quantity:     decimal.NewFromInt(2000),
		UnitCost:     decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	_, err = svc.ReceiveDelivery(ctx, delivery.ID, receiver.ID)
	require.NoError(t, err)

	_, err = svc.ReceiveDelivery(ctx, delivery.ID, receiver.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Level moved exactly once
	var freshTank entity.Tank
	require.NoError(t, db.First(&freshTank, "id = ?", tank.ID).Error)
	assert.True(t, freshTank.CurrentLevel.Equal(decimal.NewFromInt(3000)))
}

func TestReceiveDeliveryOverCapacityRolledBack(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, "Petrol", decimal.NewFromInt(1000), decimal.NewFromInt(200))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(5000), decimal.NewFromInt(4000))
	receiver := seedUser(t, db, enum.RoleManager)

	delivery, err := svc.CreateDelivery(ctx, &CreateDeliveryInput{
		SupplierID:   supplier.ID,
		TankID:       tank.ID,
		DeliveryDate: time.Now(),
		Quantity:     decimal.NewFromInt(2000),
		UnitCost:     decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	_, err = svc.ReceiveDelivery(ctx, delivery.ID, receiver.ID)
	require.Error(t, err)

	var freshDelivery entity.FuelDelivery
	require.NoError(t, db.First(&freshDelivery, "id = ?", delivery.ID).Error)
	assert.Equal(t, enum.DeliveryStatusPending, freshDelivery.Status)

	var freshProduct entity.Product
	require.NoError(t, db.First(&freshProduct, "id = ?", product.ID).Error)
	assert.True(t, freshProduct.Stock.Equal(decimal.NewFromInt(1000)))
}

func TestCreateDeliveryValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newDeliveryService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, "Diesel", decimal.NewFromInt(100), decimal.NewFromInt(180))
	tank := seedTank(t, db, product.ID, decimal.NewFromInt(10000), decimal.Zero)

	_, err := svc.CreateDelivery(ctx, &CreateDeliveryInput{
		SupplierID:   uuid.New(),
		TankID:       tank.ID,
		DeliveryDate: time.Now(),
		Quantity:     decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.CreateDelivery(ctx, &CreateDeliveryInput{
		SupplierID:   supplier.ID,
		TankID:       tank.ID,
		DeliveryDate: time.Now(),
		Quantity:     decimal.Zero,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
