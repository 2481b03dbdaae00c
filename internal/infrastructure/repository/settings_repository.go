package repository

import (
	"context"
	"errors"

	"github.com/petrodesk/station-api/internal/domain/entity"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new station settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the station settings row, seeding defaults if none exists yet.
func (r *settingsRepository) Get(ctx context.Context) (*entity.StationSettings, error) {
	var settings entity.StationSettings
	err := dbFor(ctx, r.db).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.StationSettings{
			StationName:       "Petrol Station",
			Currency:          "KES",
			CreditTermDays:    30,
			VATRate:           decimal.NewFromInt(16),
			LowStockThreshold: decimal.NewFromInt(100),
		}
		if err := dbFor(ctx, r.db).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.StationSettings) error {
	return dbFor(ctx, r.db).Save(settings).Error
}
