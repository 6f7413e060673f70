package handlers

import (
	"context"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/interfaces/http/middleware"
	"kyc-platform.backend/internal/interfaces/http/response"
	"kyc-platform.backend/internal/usecases"
)

type projectService interface {
	GetCreateProjectMessageHash(projectID string, account common.Address) common.Hash
	CreateProject(ctx context.Context, caller common.Address, input *entities.CreateProjectInput) (*entities.Project, error)
	GetKycByProject(ctx context.Context, index int, account common.Address) (*entities.KycMember, error)
	ListProjects(ctx context.Context, account common.Address) ([]*entities.Project, error)
	GetBalance(ctx context.Context, account common.Address) (*big.Int, error)
}

// ProjectHandler handles project registry endpoints
type ProjectHandler struct {
	projectUsecase projectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectUsecase projectService) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// GetCreateProjectMessageHash returns the hash the authority signs for a project
// GET /api/v1/projects/message-hash?projectId=&account=
func (h *ProjectHandler) GetCreateProjectMessageHash(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		response.Error(c, domainerrors.BadRequest("projectId is required"))
		return
	}
	account, err := usecases.ParseAddress(c.Query("account"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}

	hash := h.projectUsecase.GetCreateProjectMessageHash(projectID, account)
	response.Success(c, http.StatusOK, gin.H{"hash": hash.Hex()})
}

// CreateProject registers a paid project for the caller
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project.ToResponse())
}

// ListProjects lists an account's projects in index order
// GET /api/v1/projects/:address
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	account, err := usecases.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}

	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*entities.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.ToResponse())
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetKycByProject returns the KYC record behind an account's project
// GET /api/v1/projects/:address/:index/kyc
func (h *ProjectHandler) GetKycByProject(c *gin.Context) {
	account, err := usecases.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.Error(c, domainerrors.BadRequest("Invalid project index"))
		return
	}

	member, err := h.projectUsecase.GetKycByProject(c.Request.Context(), index, account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, member.ToResponse())
}

// GetBalance returns the fee revenue credited to an account
// GET /api/v1/balances/:address
func (h *ProjectHandler) GetBalance(c *gin.Context) {
	account, err := usecases.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}

	balance, err := h.projectUsecase.GetBalance(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entities.BalanceResponse{
		Address: account.Hex(),
		Balance: balance.String(),
	})
}
