package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the figures shown on the back-office dashboard
type DashboardStats struct {
	TodaySalesTotal    decimal.Decimal `json:"today_sales_total"`
	TodaySalesCount    int64           `json:"today_sales_count"`
	TodayCreditTotal   decimal.Decimal `json:"today_credit_total"`
	OutstandingCredit  decimal.Decimal `json:"outstanding_credit"`
	PendingSettlements int64           `json:"pending_settlements"`
	LowStockProducts   int64           `json:"low_stock_products"`
	ActiveCustomers    int64           `json:"active_customers"`
}

// AnalyticsRepository defines aggregate queries for the dashboard
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context, day time.Time) (*DashboardStats, error)
	GetSalesTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}
