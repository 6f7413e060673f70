package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/metrics"
	"kyc-platform.backend/pkg/logger"
)

const opCreateProject = "create_project"

// ProjectUsecase registers paid projects for KYC'd accounts
type ProjectUsecase struct {
	projectRepo  repositories.ProjectRepository
	ledgerRepo   repositories.LedgerRepository
	settingsRepo repositories.SettingsRepository
	kyc          *KycUsecase
	verifier     *SignatureVerifier
	uow          repositories.UnitOfWork
	clock        Clock
	metrics      *metrics.Metrics

	// serializes position assignment within the process
	createMu sync.Mutex
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(
	projectRepo repositories.ProjectRepository,
	ledgerRepo repositories.LedgerRepository,
	settingsRepo repositories.SettingsRepository,
	kyc *KycUsecase,
	verifier *SignatureVerifier,
	uow repositories.UnitOfWork,
	clock Clock,
	m *metrics.Metrics,
) *ProjectUsecase {
	if clock == nil {
		clock = SystemClock
	}
	return &ProjectUsecase{
		projectRepo:  projectRepo,
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
		kyc:          kyc,
		verifier:     verifier,
		uow:          uow,
		clock:        clock,
		metrics:      m,
	}
}

// GetCreateProjectMessageHash returns the hash the authority signs to approve projectID for account
func (u *ProjectUsecase) GetCreateProjectMessageHash(projectID string, account common.Address) common.Hash {
	return u.verifier.HashCreateProject(projectID, account)
}

// CreateProject registers projectID for the caller and forwards the paid amount to the authority
func (u *ProjectUsecase) CreateProject(ctx context.Context, caller common.Address, input *entities.CreateProjectInput) (*entities.Project, error) {
	project, err := u.createProject(ctx, caller, input)
	if err != nil {
		u.metrics.IncrementRejected(opCreateProject, domainerrors.Reason(err))
		return nil, err
	}

	u.metrics.IncrementProjectsCreated()
	u.metrics.AddServiceFee(project.PaidAmount)
	logger.Info(ctx, "Project created",
		zap.String("account", caller.Hex()),
		zap.String("project_id", project.ProjectID),
		zap.Int("index", project.Position),
		zap.String("paid_amount", project.PaidAmount.String()),
	)
	return project, nil
}

func (u *ProjectUsecase) createProject(ctx context.Context, caller common.Address, input *entities.CreateProjectInput) (*entities.Project, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("%w: projectId is required", domainerrors.ErrInvalidInput)
	}
	paid, err := parseWeiAmount(input.PaidAmount)
	if err != nil {
		return nil, err
	}

	u.createMu.Lock()
	defer u.createMu.Unlock()

	var project *entities.Project
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.kyc.GetKycInfo(txCtx, caller); err != nil {
			return err
		}

		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}

		hash := u.verifier.HashCreateProject(projectID, caller)
		if !u.verifier.Verify(hash, input.Signature, settings.Owner) {
			return domainerrors.ErrInvalidSignature
		}

		existing, err := u.projectRepo.GetByOwnerAndProjectID(txCtx, caller, projectID)
		if err == nil && existing != nil {
			return domainerrors.ErrAlreadyExists
		}
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		fee := settings.Project.ServiceFee
		if fee == nil {
			fee = new(big.Int)
		}
		if paid.Cmp(fee) < 0 {
			return domainerrors.ErrInsufficientFee
		}

		position, err := u.projectRepo.CountByOwner(txCtx, caller)
		if err != nil {
			return err
		}

		now := recordTime(u.clock)
		project = &entities.Project{
			ProjectID:    projectID,
			OwnerAddress: caller,
			Position:     position,
			PaidAmount:   paid,
			CreatedAt:    now,
		}
		if err := u.projectRepo.Create(txCtx, project); err != nil {
			return err
		}

		if paid.Sign() == 0 {
			return nil
		}
		return u.ledgerRepo.Collect(txCtx, &entities.LedgerEntry{
			FromAddress: caller,
			ToAddress:   settings.Owner,
			Amount:      new(big.Int).Set(paid),
			Reference:   "project:" + caller.Hex() + ":" + projectID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetKycByProject resolves the account's project at index and returns the owner's KYC record
func (u *ProjectUsecase) GetKycByProject(ctx context.Context, index int, account common.Address) (*entities.KycMember, error) {
	project, err := u.projectRepo.GetByOwnerAndPosition(ctx, account, index)
	if err != nil {
		return nil, err
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !u.clock.Now().Before(project.ExpiresAt(settings.Project)) {
		return nil, domainerrors.ErrExpired
	}

	return u.kyc.GetKycInfo(ctx, project.OwnerAddress)
}

// ListProjects returns the account's projects in index order
func (u *ProjectUsecase) ListProjects(ctx context.Context, account common.Address) ([]*entities.Project, error) {
	return u.projectRepo.ListByOwner(ctx, account)
}

// GetBalance returns the fee revenue credited to account
func (u *ProjectUsecase) GetBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return u.ledgerRepo.GetBalance(ctx, account)
}
