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

type settingsService interface {
	GetSetting(ctx context.Context) (*entities.Setting, error)
	GetKycSettings(ctx context.Context) (*entities.KycSettings, error)
	GetProjectSettings(ctx context.Context) (*entities.ProjectSettings, error)
	SetSetting(ctx context.Context, caller common.Address, input *entities.SetSettingInput) (*entities.Setting, error)
	SetKycSettings(ctx context.Context, caller common.Address, input *entities.SetKycSettingsInput) (*entities.KycSettings, error)
	SetProjectSettings(ctx context.Context, caller common.Address, input *entities.SetProjectSettingsInput) (*entities.ProjectSettings, error)
}

// SettingsHandler handles settings endpoints
type SettingsHandler struct {
	settingsUsecase settingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase settingsService) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

// GetSetting returns the combined settings
// GET /api/v1/settings
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsUsecase.GetSetting(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, setting.ToResponse())
}

// SetSetting applies the combined update
// PUT /api/v1/settings
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var input entities.SetSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	setting, err := h.settingsUsecase.SetSetting(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, setting.ToResponse())
}

// GetKycSettings returns the KYC settings
// GET /api/v1/settings/kyc
func (h *SettingsHandler) GetKycSettings(c *gin.Context) {
	kyc, err := h.settingsUsecase.GetKycSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, kyc.ToResponse())
}

// SetKycSettings overwrites the KYC settings
// PUT /api/v1/settings/kyc
func (h *SettingsHandler) SetKycSettings(c *gin.Context) {
	var input entities.SetKycSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	kyc, err := h.settingsUsecase.SetKycSettings(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, kyc.ToResponse())
}

// GetProjectSettings returns the project settings
// GET /api/v1/settings/project
func (h *SettingsHandler) GetProjectSettings(c *gin.Context) {
	project, err := h.settingsUsecase.GetProjectSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project.ToResponse())
}

// SetProjectSettings overwrites the project settings
// PUT /api/v1/settings/project
func (h *SettingsHandler) SetProjectSettings(c *gin.Context) {
	var input entities.SetProjectSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.MustCallerAddress(c)
	if !ok {
		return
	}

	project, err := h.settingsUsecase.SetProjectSettings(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project.ToResponse())
}
