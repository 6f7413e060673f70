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
	"kyc-platform.backend/internal/usecases"
)

type kycService interface {
	GetCreateKycMessageHash(uid string, account common.Address) common.Hash
	CreateKycMember(ctx context.Context, caller common.Address, input *entities.CreateKycMemberInput) (*entities.KycMember, error)
	GetKycInfo(ctx context.Context, account common.Address) (*entities.KycMember, error)
}

// KycHandler handles KYC registry endpoints
type KycHandler struct {
	kycUsecase kycService
}

// NewKycHandler creates a new KYC handler
func NewKycHandler(kycUsecase kycService) *KycHandler {
	return &KycHandler{kycUsecase: kycUsecase}
}

// GetCreateKycMessageHash returns the hash the authority signs for a KYC approval
// GET /api/v1/kyc/message-hash?uid=&account=
func (h *KycHandler) GetCreateKycMessageHash(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		response.Error(c, domainerrors.BadRequest("uid is required"))
		return
	}
	account, err := usecases.ParseAddress(c.Query("account"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}

	hash := h.kycUsecase.GetCreateKycMessageHash(uid, account)
	response.Success(c, http.StatusOK, gin.H{"hash": hash.Hex()})
}

// CreateKycMember registers the caller
// POST /api/v1/kyc
func (h *KycHandler) CreateKycMember(c *gin.Context) {
	var input entities.CreateKycMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	member, err := h.kycUsecase.CreateKycMember(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member.ToResponse())
}

// GetKycInfo returns the account's valid KYC record
// GET /api/v1/kyc/:address
func (h *KycHandler) GetKycInfo(c *gin.Context) {
	account, err := usecases.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account address"))
		return
	}

	member, err := h.kycUsecase.GetKycInfo(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, member.ToResponse())
}
