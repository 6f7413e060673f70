package repositories

import (
	"context"

	"kyc-platform.backend/internal/domain/entities"
)

// SettingsRepository persists the platform settings singleton
type SettingsRepository interface {
	// Get returns ErrNotFound until the settings were seeded
	Get(ctx context.Context) (*entities.PlatformSettings, error)
	Save(ctx context.Context, settings *entities.PlatformSettings) error
}
