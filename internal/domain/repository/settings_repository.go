package repository

import (
	"context"

	"github.com/petrodesk/station-api/internal/domain/entity"
)

// SettingsRepository defines the interface for station settings operations.
// A single settings row exists; Get returns it, creating defaults if absent.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StationSettings, error)
	Update(ctx context.Context, settings *entity.StationSettings) error
}
