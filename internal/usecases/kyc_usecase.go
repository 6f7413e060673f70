package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/metrics"
	"kyc-platform.backend/pkg/logger"
)

const opCreateKycMember = "create_kyc_member"

// KycUsecase registers and validates KYC approvals
type KycUsecase struct {
	kycRepo      repositories.KycMemberRepository
	settingsRepo repositories.SettingsRepository
	verifier     *SignatureVerifier
	uow          repositories.UnitOfWork
	clock        Clock
	metrics      *metrics.Metrics
}

// NewKycUsecase creates a new KYC usecase
func NewKycUsecase(
	kycRepo repositories.KycMemberRepository,
	settingsRepo repositories.SettingsRepository,
	verifier *SignatureVerifier,
	uow repositories.UnitOfWork,
	clock Clock,
	m *metrics.Metrics,
) *KycUsecase {
	if clock == nil {
		clock = SystemClock
	}
	return &KycUsecase{
		kycRepo:      kycRepo,
		settingsRepo: settingsRepo,
		verifier:     verifier,
		uow:          uow,
		clock:        clock,
		metrics:      m,
	}
}

// GetCreateKycMessageHash returns the hash the authority signs to approve uid for account
func (u *KycUsecase) GetCreateKycMessageHash(uid string, account common.Address) common.Hash {
	return u.verifier.HashCreateKyc(uid, account)
}

// CreateKycMember registers the caller under uid when the authority signed the approval
func (u *KycUsecase) CreateKycMember(ctx context.Context, caller common.Address, input *entities.CreateKycMemberInput) (*entities.KycMember, error) {
	member, err := u.createKycMember(ctx, caller, input)
	if err != nil {
		u.metrics.IncrementRejected(opCreateKycMember, domainerrors.Reason(err))
		return nil, err
	}

	u.metrics.IncrementKycMembersCreated()
	logger.Info(ctx, "KYC member created",
		zap.String("account", caller.Hex()),
		zap.String("uid", member.UID),
		zap.Uint64("version", member.Version),
	)
	return member, nil
}

func (u *KycUsecase) createKycMember(ctx context.Context, caller common.Address, input *entities.CreateKycMemberInput) (*entities.KycMember, error) {
	uid := strings.TrimSpace(input.UID)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", domainerrors.ErrInvalidInput)
	}

	var member *entities.KycMember
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}

		hash := u.verifier.HashCreateKyc(uid, caller)
		if !u.verifier.Verify(hash, input.Signature, settings.Owner) {
			return domainerrors.ErrInvalidSignature
		}

		if err := u.ensureAbsent(u.kycRepo.GetByAddress(txCtx, caller)); err != nil {
			return err
		}
		if err := u.ensureAbsent(u.kycRepo.GetByUID(txCtx, uid)); err != nil {
			return err
		}

		member = &entities.KycMember{
			UID:          uid,
			OwnerAddress: caller,
			Version:      settings.Kyc.Version,
			CreatedAt:    recordTime(u.clock),
		}
		return u.kycRepo.Create(txCtx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ensureAbsent turns a lookup result into ErrAlreadyExists when a record was found
func (u *KycUsecase) ensureAbsent(existing *entities.KycMember, err error) error {
	if err == nil && existing != nil {
		return domainerrors.ErrAlreadyExists
	}
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}

// GetKycInfo returns the account's approval if it carries the current version and has not expired
func (u *KycUsecase) GetKycInfo(ctx context.Context, account common.Address) (*entities.KycMember, error) {
	member, err := u.kycRepo.GetByAddress(ctx, account)
	if err != nil {
		return nil, err
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if member.Version != settings.Kyc.Version {
		return nil, domainerrors.ErrVersionMismatch
	}
	if !u.clock.Now().Before(member.ExpiresAt(settings.Kyc)) {
		return nil, domainerrors.ErrExpired
	}
	return member, nil
}
