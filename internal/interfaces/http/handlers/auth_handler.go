package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/internal/interfaces/http/response"
)

type walletAuthService interface {
	Challenge(ctx context.Context, input *entities.ChallengeInput) (*entities.ChallengeResponse, error)
	Login(ctx context.Context, input *entities.WalletLoginInput) (*entities.AuthResponse, error)
}

// AuthHandler handles wallet sign-in endpoints
type AuthHandler struct {
	authUsecase walletAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase walletAuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Challenge issues a sign-in nonce
// POST /api/v1/auth/challenge
func (h *AuthHandler) Challenge(c *gin.Context) {
	var input entities.ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	challenge, err := h.authUsecase.Challenge(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, challenge)
}

// Login exchanges a signed challenge for an access token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.WalletLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}
