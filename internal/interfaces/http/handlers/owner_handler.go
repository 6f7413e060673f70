package handlers

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/interfaces/http/middleware"
	"kyc-platform.backend/internal/interfaces/http/response"
)

type accessControlService interface {
	Owner(ctx context.Context) (common.Address, error)
	TransferOwnership(ctx context.Context, caller common.Address, input *entities.TransferOwnershipInput) (common.Address, error)
}

// OwnerHandler exposes the authority account
type OwnerHandler struct {
	access accessControlService
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(access accessControlService) *OwnerHandler {
	return &OwnerHandler{access: access}
}

// GetOwner returns the authority address
// GET /api/v1/owner
func (h *OwnerHandler) GetOwner(c *gin.Context) {
	owner, err := h.access.Owner(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"owner": owner.Hex()})
}

// TransferOwnership hands the authority role to another account
// POST /api/v1/owner/transfer
func (h *OwnerHandler) TransferOwnership(c *gin.Context) {
	var input entities.TransferOwnershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	owner, err := h.access.TransferOwnership(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"owner": owner.Hex()})
}
