package repositories

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainrepos "kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/models"
	"kyc-platform.backend/pkg/logger"
	"kyc-platform.backend/pkg/redis"
)

const (
	settingsCacheKey    = "kyc-platform:settings"
	settingsCacheGenKey = "kyc-platform:settings:gen"
)

var (
	settingsCacheGet  = redis.Get
	settingsCacheSet  = redis.Set
	settingsCacheDel  = redis.Del
	settingsCacheIncr = redis.Incr
)

// settingsCacheEntry tags cached settings with the generation they were read under.
// Every committed Save bumps the generation, so an entry filled from a pre-commit read is ignored.
type settingsCacheEntry struct {
	Generation int64                  `json:"generation"`
	Settings   models.PlatformSetting `json:"settings"`
}

type cachedSettingsRepo struct {
	next domainrepos.SettingsRepository
	ttl  time.Duration
}

// NewCachedSettingsRepository serves reads from Redis and falls back to next on a miss.
// Cache failures are logged and never fail the call.
func NewCachedSettingsRepository(next domainrepos.SettingsRepository, ttl time.Duration) domainrepos.SettingsRepository {
	return &cachedSettingsRepo{next: next, ttl: ttl}
}

func (r *cachedSettingsRepo) Get(ctx context.Context) (*entities.PlatformSettings, error) {
	// Reads inside a transaction may see uncommitted rows and must not touch the shared cache.
	if InTransaction(ctx) {
		return r.next.Get(ctx)
	}

	gen, err := r.generation(ctx)
	if err != nil {
		logger.Warn(ctx, "Settings cache generation read failed", zap.Error(err))
		return r.next.Get(ctx)
	}

	if raw, err := settingsCacheGet(ctx, settingsCacheKey); err == nil {
		var entry settingsCacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil && entry.Generation == gen {
			if settings, err := toSettingsEntity(&entry.Settings); err == nil {
				return settings, nil
			}
		}
		logger.Debug(ctx, "Discarding stale or unreadable settings cache entry")
	} else if !redis.IsNil(err) {
		logger.Warn(ctx, "Settings cache read failed", zap.Error(err))
	}

	settings, err := r.next.Get(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(settingsCacheEntry{Generation: gen, Settings: *toSettingsModel(settings)})
	if err == nil {
		if err := settingsCacheSet(ctx, settingsCacheKey, payload, r.ttl); err != nil {
			logger.Warn(ctx, "Settings cache write failed", zap.Error(err))
		}
	}
	return settings, nil
}

func (r *cachedSettingsRepo) Save(ctx context.Context, settings *entities.PlatformSettings) error {
	if err := r.next.Save(ctx, settings); err != nil {
		return err
	}
	AfterTx(ctx, r.invalidate)
	return nil
}

func (r *cachedSettingsRepo) invalidate(ctx context.Context) {
	if _, err := settingsCacheIncr(ctx, settingsCacheGenKey); err != nil {
		logger.Warn(ctx, "Settings cache generation bump failed", zap.Error(err))
	}
	if err := settingsCacheDel(ctx, settingsCacheKey); err != nil {
		logger.Warn(ctx, "Settings cache invalidation failed", zap.Error(err))
	}
}

func (r *cachedSettingsRepo) generation(ctx context.Context) (int64, error) {
	raw, err := settingsCacheGet(ctx, settingsCacheGenKey)
	if redis.IsNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}
