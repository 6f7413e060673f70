package usecases

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/pkg/logger"
)

// AccessControl gates mutations to the authority account
type AccessControl struct {
	settingsRepo repositories.SettingsRepository
	uow          repositories.UnitOfWork
}

// NewAccessControl creates a new access control usecase
func NewAccessControl(settingsRepo repositories.SettingsRepository, uow repositories.UnitOfWork) *AccessControl {
	return &AccessControl{settingsRepo: settingsRepo, uow: uow}
}

// Owner returns the current authority
func (a *AccessControl) Owner(ctx context.Context) (common.Address, error) {
	settings, err := a.settingsRepo.Get(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return settings.Owner, nil
}

// RequireAuthority fails with ErrUnauthorized unless caller is the authority
func (a *AccessControl) RequireAuthority(ctx context.Context, caller common.Address) error {
	owner, err := a.Owner(ctx)
	if err != nil {
		return err
	}
	return requireOwner(owner, caller)
}

// TransferOwnership hands the authority role to a new account
func (a *AccessControl) TransferOwnership(ctx context.Context, caller common.Address, input *entities.TransferOwnershipInput) (common.Address, error) {
	newOwner, err := ParseAddress(input.NewOwner)
	if err != nil {
		return common.Address{}, err
	}
	if newOwner == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: new owner is the zero address", domainerrors.ErrInvalidInput)
	}

	var previous common.Address
	err = a.update(ctx, caller, func(settings *entities.PlatformSettings) error {
		previous = settings.Owner
		settings.Owner = newOwner
		return nil
	})
	if err != nil {
		return common.Address{}, err
	}

	logger.Info(ctx, "Ownership transferred",
		zap.String("previous_owner", previous.Hex()),
		zap.String("new_owner", newOwner.Hex()),
	)
	return newOwner, nil
}

// update loads the settings, checks the caller and saves the mutated copy in one unit of work
func (a *AccessControl) update(ctx context.Context, caller common.Address, mutate func(*entities.PlatformSettings) error) error {
	return a.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := a.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		if err := requireOwner(settings.Owner, caller); err != nil {
			return err
		}
		if err := mutate(settings); err != nil {
			return err
		}
		return a.settingsRepo.Save(txCtx, settings)
	})
}

func requireOwner(owner, caller common.Address) error {
	if caller != owner {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
