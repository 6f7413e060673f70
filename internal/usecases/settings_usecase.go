package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/pkg/logger"
)

// SettingsUsecase reads and updates the KYC and project settings
type SettingsUsecase struct {
	settingsRepo repositories.SettingsRepository
	access       *AccessControl
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(settingsRepo repositories.SettingsRepository, access *AccessControl) *SettingsUsecase {
	return &SettingsUsecase{settingsRepo: settingsRepo, access: access}
}

// Seed stores defaults when no settings exist yet and returns the effective settings
func (u *SettingsUsecase) Seed(ctx context.Context, defaults *entities.PlatformSettings) (*entities.PlatformSettings, error) {
	existing, err := u.settingsRepo.Get(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if err := validateVersion(defaults.Kyc.Version); err != nil {
		return nil, err
	}
	if defaults.Owner == (common.Address{}) {
		return nil, errors.New("authority address is required to seed settings")
	}
	if defaults.Kyc.DurationUpdateVersion < 0 || defaults.Kyc.RenewExpireTime < 0 ||
		defaults.Project.ExpireEachProject < 0 || defaults.Project.DurationPaymentFee < 0 ||
		defaults.Project.Lifetime() < 0 {
		return nil, fmt.Errorf("%w: default durations must be non-negative and fit a project lifetime", domainerrors.ErrInvalidInput)
	}
	if defaults.Project.ServiceFee == nil {
		defaults.Project.ServiceFee = new(big.Int)
	}
	if err := u.settingsRepo.Save(ctx, defaults); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Platform settings seeded",
		zap.String("owner", defaults.Owner.Hex()),
		zap.Uint64("kyc_version", defaults.Kyc.Version),
	)
	return defaults, nil
}

// GetKycSettings returns the current KYC settings
func (u *SettingsUsecase) GetKycSettings(ctx context.Context) (*entities.KycSettings, error) {
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &settings.Kyc, nil
}

// GetProjectSettings returns the current project settings
func (u *SettingsUsecase) GetProjectSettings(ctx context.Context) (*entities.ProjectSettings, error) {
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &settings.Project, nil
}

// GetSetting returns the combined legacy view
func (u *SettingsUsecase) GetSetting(ctx context.Context) (*entities.Setting, error) {
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return combinedSetting(settings), nil
}

// SetKycSettings overwrites the KYC settings
func (u *SettingsUsecase) SetKycSettings(ctx context.Context, caller common.Address, input *entities.SetKycSettingsInput) (*entities.KycSettings, error) {
	if err := validateVersion(input.Version); err != nil {
		return nil, err
	}
	if err := validateDurations(input.DurationUpdateVersion, input.RenewExpireTime); err != nil {
		return nil, err
	}

	kyc := entities.KycSettings{
		Version:               input.Version,
		DurationUpdateVersion: seconds(input.DurationUpdateVersion),
		RenewExpireTime:       seconds(input.RenewExpireTime),
	}
	err := u.access.update(ctx, caller, func(settings *entities.PlatformSettings) error {
		settings.Kyc = kyc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "KYC settings updated", zap.Uint64("version", kyc.Version))
	return &kyc, nil
}

// SetProjectSettings overwrites the project settings
func (u *SettingsUsecase) SetProjectSettings(ctx context.Context, caller common.Address, input *entities.SetProjectSettingsInput) (*entities.ProjectSettings, error) {
	fee, err := parseWeiAmount(input.ServiceFee)
	if err != nil {
		return nil, err
	}
	if err := validateLifetime(input.ExpireEachProject, input.DurationPaymentFee); err != nil {
		return nil, err
	}

	project := entities.ProjectSettings{
		ExpireEachProject:  seconds(input.ExpireEachProject),
		ServiceFee:         fee,
		DurationPaymentFee: seconds(input.DurationPaymentFee),
	}
	err = u.access.update(ctx, caller, func(settings *entities.PlatformSettings) error {
		settings.Project = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Project settings updated", zap.String("service_fee", fee.String()))
	return &project, nil
}

// SetSetting is the legacy combined update. It replaces the KYC settings and the
// project service fee and leaves the project durations as they are.
func (u *SettingsUsecase) SetSetting(ctx context.Context, caller common.Address, input *entities.SetSettingInput) (*entities.Setting, error) {
	if err := validateVersion(input.Version); err != nil {
		return nil, err
	}
	if err := validateDurations(input.DurationUpdateVersion, input.RenewExpireTime); err != nil {
		return nil, err
	}
	fee, err := parseWeiAmount(input.ServiceFee)
	if err != nil {
		return nil, err
	}

	var result *entities.Setting
	err = u.access.update(ctx, caller, func(settings *entities.PlatformSettings) error {
		settings.Kyc = entities.KycSettings{
			Version:               input.Version,
			DurationUpdateVersion: seconds(input.DurationUpdateVersion),
			RenewExpireTime:       seconds(input.RenewExpireTime),
		}
		settings.Project.ServiceFee = fee
		result = combinedSetting(settings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Settings updated", zap.Uint64("version", input.Version), zap.String("service_fee", fee.String()))
	return result, nil
}

func combinedSetting(settings *entities.PlatformSettings) *entities.Setting {
	return &entities.Setting{
		Version:               settings.Kyc.Version,
		DurationUpdateVersion: settings.Kyc.DurationUpdateVersion,
		RenewExpireTime:       settings.Kyc.RenewExpireTime,
		ServiceFee:            settings.Project.ServiceFee,
	}
}

func seconds(s int64) time.Duration {
	return time.Duration(s) * time.Second
}
