package service

import (
	"context"

	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService handles station settings operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the station settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StationSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	StationName       *string
	Currency          *string
	CreditTermDays    *int
	VATRate           *decimal.Decimal
	LowStockThreshold *decimal.Decimal
	ReceiptFooter     *string
}

// UpdateSettings updates the station settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StationSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.StationName != nil {
		settings.StationName = *input.StationName
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.CreditTermDays != nil {
		if *input.CreditTermDays < 1 {
			return nil, apperror.NewBadRequestError("Credit term must be at least one day")
		}
		settings.CreditTermDays = *input.CreditTermDays
	}
	if input.VATRate != nil {
		if input.VATRate.IsNegative() {
			return nil, apperror.NewBadRequestError("VAT rate cannot be negative")
		}
		settings.VATRate = *input.VATRate
	}
	if input.LowStockThreshold != nil {
		settings.LowStockThreshold = *input.LowStockThreshold
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
