package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	domainrepos "kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/models"
)

const settingsRowID = 1

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository creates a settings repository backed by the platform_settings row
func NewSettingsRepository(db *gorm.DB) domainrepos.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*entities.PlatformSettings, error) {
	var m models.PlatformSetting
	if err := GetDB(ctx, r.db).Where("id = ?", settingsRowID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toSettingsEntity(&m)
}

func (r *settingsRepo) Save(ctx context.Context, settings *entities.PlatformSettings) error {
	m := toSettingsModel(settings)
	m.UpdatedAt = time.Now()

	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"owner_address",
			"kyc_version",
			"duration_update_version",
			"renew_expire_time",
			"expire_each_project",
			"service_fee",
			"duration_payment_fee",
			"updated_at",
		}),
	}).Create(m).Error
}

func toSettingsModel(s *entities.PlatformSettings) *models.PlatformSetting {
	fee := "0"
	if s.Project.ServiceFee != nil {
		fee = s.Project.ServiceFee.String()
	}
	return &models.PlatformSetting{
		ID:                    settingsRowID,
		OwnerAddress:          s.Owner.Hex(),
		KycVersion:            s.Kyc.Version,
		DurationUpdateVersion: toSeconds(s.Kyc.DurationUpdateVersion),
		RenewExpireTime:       toSeconds(s.Kyc.RenewExpireTime),
		ExpireEachProject:     toSeconds(s.Project.ExpireEachProject),
		ServiceFee:            fee,
		DurationPaymentFee:    toSeconds(s.Project.DurationPaymentFee),
	}
}

func toSettingsEntity(m *models.PlatformSetting) (*entities.PlatformSettings, error) {
	fee, err := parseWei(m.ServiceFee)
	if err != nil {
		return nil, fmt.Errorf("settings service fee: %w", err)
	}
	return &entities.PlatformSettings{
		Owner: common.HexToAddress(m.OwnerAddress),
		Kyc: entities.KycSettings{
			Version:               m.KycVersion,
			DurationUpdateVersion: fromSeconds(m.DurationUpdateVersion),
			RenewExpireTime:       fromSeconds(m.RenewExpireTime),
		},
		Project: entities.ProjectSettings{
			ExpireEachProject:  fromSeconds(m.ExpireEachProject),
			ServiceFee:         fee,
			DurationPaymentFee: fromSeconds(m.DurationPaymentFee),
		},
	}, nil
}

func toSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func fromSeconds(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	return v, nil
}
