package service

import (
	"context"
	"time"

	"github.com/petrodesk/station-api/internal/domain/repository"
)

// DashboardService aggregates back-office dashboard figures
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// GetStats returns today's dashboard statistics
func (s *DashboardService) GetStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.analyticsRepo.GetDashboardStats(ctx, time.Now())
}
