package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	domainrepos "kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/models"
)

type kycMemberRepo struct {
	db *gorm.DB
}

// NewKycMemberRepository creates a new KYC member repository
func NewKycMemberRepository(db *gorm.DB) domainrepos.KycMemberRepository {
	return &kycMemberRepo{db: db}
}

// Create inserts the record. A unique index violation on account or uid maps to ErrAlreadyExists.
func (r *kycMemberRepo) Create(ctx context.Context, member *entities.KycMember) error {
	m := &models.KycMember{
		OwnerAddress: member.OwnerAddress.Hex(),
		UID:          member.UID,
		Version:      member.Version,
		CreatedAt:    member.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *kycMemberRepo) GetByAddress(ctx context.Context, address common.Address) (*entities.KycMember, error) {
	var m models.KycMember
	if err := GetDB(ctx, r.db).Where("owner_address = ?", address.Hex()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toKycMemberEntity(&m), nil
}

func (r *kycMemberRepo) GetByUID(ctx context.Context, uid string) (*entities.KycMember, error) {
	var m models.KycMember
	if err := GetDB(ctx, r.db).Where("uid = ?", uid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toKycMemberEntity(&m), nil
}

func (r *kycMemberRepo) CountInvalid(ctx context.Context, version uint64, cutoff time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.KycMember{}).
		Where("version <> ? OR created_at <= ?", version, cutoff).
		Count(&total).Error
	return total, err
}

func toKycMemberEntity(m *models.KycMember) *entities.KycMember {
	return &entities.KycMember{
		UID:          m.UID,
		OwnerAddress: common.HexToAddress(m.OwnerAddress),
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
	}
}
