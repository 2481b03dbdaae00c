package repository

import (
	"context"
	"time"

	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/enum"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

type sumRow struct {
	Total decimal.Decimal
}

func (r *analyticsRepository) GetDashboardStats(ctx context.Context, day time.Time) (*domainRepo.DashboardStats, error) {
	db := dbFor(ctx, r.db)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	stats := &domainRepo.DashboardStats{}

	var row sumRow
	err := db.Model(&entity.Sale{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("sale_date >= ? AND sale_date < ? AND voided = ?", start, end, false).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats.TodaySalesTotal = row.Total

	err = db.Model(&entity.Sale{}).
		Where("sale_date >= ? AND sale_date < ? AND voided = ?", start, end, false).
		Count(&stats.TodaySalesCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Sale{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("sale_date >= ? AND sale_date < ? AND voided = ? AND payment_status = ?",
			start, end, false, enum.PaymentStatusCredit).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats.TodayCreditTotal = row.Total

	err = db.Model(&entity.CreditCustomer{}).
		Select("COALESCE(SUM(current_balance), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats.OutstandingCredit = row.Total

	err = db.Model(&entity.DailyCashRecord{}).
		Where("status = ?", enum.RecordStatusPending).
		Count(&stats.PendingSettlements).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Product{}).
		Where("active = ? AND stock <= reorder_level", true).
		Count(&stats.LowStockProducts).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.CreditCustomer{}).
		Where("active = ?", true).
		Count(&stats.ActiveCustomers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *analyticsRepository) GetSalesTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var row sumRow
	err := dbFor(ctx, r.db).Model(&entity.Sale{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("sale_date >= ? AND sale_date < ? AND voided = ?", start, end, false).
		Scan(&row).Error
	return row.Total, err
}
