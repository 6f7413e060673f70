package repositories

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"kyc-platform.backend/internal/domain/entities"
)

// ProjectRepository defines project record data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByOwnerAndProjectID(ctx context.Context, owner common.Address, projectID string) (*entities.Project, error)
	GetByOwnerAndPosition(ctx context.Context, owner common.Address, position int) (*entities.Project, error)
	CountByOwner(ctx context.Context, owner common.Address) (int, error)
	ListByOwner(ctx context.Context, owner common.Address) ([]*entities.Project, error)
	CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
