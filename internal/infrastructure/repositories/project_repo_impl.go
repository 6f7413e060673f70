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

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainrepos.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *entities.Project) error {
	paid := "0"
	if project.PaidAmount != nil {
		paid = project.PaidAmount.String()
	}
	m := &models.Project{
		OwnerAddress: project.OwnerAddress.Hex(),
		ProjectID:    project.ProjectID,
		Position:     project.Position,
		PaidAmount:   paid,
		CreatedAt:    project.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *projectRepo) GetByOwnerAndProjectID(ctx context.Context, owner common.Address, projectID string) (*entities.Project, error) {
	return r.first(ctx, "owner_address = ? AND project_id = ?", owner.Hex(), projectID)
}

func (r *projectRepo) GetByOwnerAndPosition(ctx context.Context, owner common.Address, position int) (*entities.Project, error) {
	if position < 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.first(ctx, "owner_address = ? AND position = ?", owner.Hex(), position)
}

func (r *projectRepo) CountByOwner(ctx context.Context, owner common.Address) (int, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Project{}).
		Where("owner_address = ?", owner.Hex()).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *projectRepo) ListByOwner(ctx context.Context, owner common.Address) ([]*entities.Project, error) {
	var rows []models.Project
	if err := GetDB(ctx, r.db).
		Where("owner_address = ?", owner.Hex()).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Project, 0, len(rows))
	for i := range rows {
		p, err := toProjectEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *projectRepo) CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Project{}).
		Where("created_at <= ?", cutoff).
		Count(&total).Error
	return total, err
}

func (r *projectRepo) first(ctx context.Context, query string, args ...interface{}) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProjectEntity(&m)
}

func toProjectEntity(m *models.Project) (*entities.Project, error) {
	paid, err := parseWei(m.PaidAmount)
	if err != nil {
		return nil, err
	}
	return &entities.Project{
		ProjectID:    m.ProjectID,
		OwnerAddress: common.HexToAddress(m.OwnerAddress),
		Position:     m.Position,
		PaidAmount:   paid,
		CreatedAt:    m.CreatedAt,
	}, nil
}
