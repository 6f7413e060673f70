package repositories

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"kyc-platform.backend/internal/domain/entities"
)

// KycMemberRepository defines KYC record data operations
type KycMemberRepository interface {
	Create(ctx context.Context, member *entities.KycMember) error
	GetByAddress(ctx context.Context, address common.Address) (*entities.KycMember, error)
	GetByUID(ctx context.Context, uid string) (*entities.KycMember, error)
	// CountInvalid counts records stamped with another version or created before cutoff
	CountInvalid(ctx context.Context, version uint64, cutoff time.Time) (int64, error)
}
