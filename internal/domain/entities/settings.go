package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PlatformSettings is the singleton configuration of the registry
type PlatformSettings struct {
	Owner   common.Address
	Kyc     KycSettings
	Project ProjectSettings
}

// Setting is the legacy combined view returned by getSetting
type Setting struct {
	Version               uint64        `json:"version"`
	DurationUpdateVersion time.Duration `json:"durationUpdateVersion"`
	RenewExpireTime       time.Duration `json:"renewExpireTime"`
	ServiceFee            *big.Int      `json:"serviceFee"`
}

// SetSettingInput is the legacy combined settings update. Durations are seconds.
type SetSettingInput struct {
	Version               uint64 `json:"version" binding:"required"`
	DurationUpdateVersion int64  `json:"durationUpdateVersion"`
	RenewExpireTime       int64  `json:"renewExpireTime"`
	ServiceFee            string `json:"serviceFee" binding:"required"`
}

// SetKycSettingsInput updates the KYC settings. Durations are seconds.
type SetKycSettingsInput struct {
	Version               uint64 `json:"version" binding:"required"`
	DurationUpdateVersion int64  `json:"durationUpdateVersion"`
	RenewExpireTime       int64  `json:"renewExpireTime"`
}

// SetProjectSettingsInput updates the project settings. Durations are seconds.
type SetProjectSettingsInput struct {
	ExpireEachProject  int64  `json:"expireEachProject"`
	ServiceFee         string `json:"serviceFee" binding:"required"`
	DurationPaymentFee int64  `json:"durationPaymentFee"`
}

// TransferOwnershipInput changes the authority account
type TransferOwnershipInput struct {
	NewOwner string `json:"newOwner" binding:"required"`
}

// KycSettingsResponse is the wire shape of KYC settings, durations in seconds
type KycSettingsResponse struct {
	Version               uint64 `json:"version"`
	DurationUpdateVersion int64  `json:"durationUpdateVersion"`
	RenewExpireTime       int64  `json:"renewExpireTime"`
}

// ProjectSettingsResponse is the wire shape of project settings
type ProjectSettingsResponse struct {
	ExpireEachProject  int64  `json:"expireEachProject"`
	ServiceFee         string `json:"serviceFee"`
	DurationPaymentFee int64  `json:"durationPaymentFee"`
}

// SettingResponse is the wire shape of the legacy combined settings
type SettingResponse struct {
	Version               uint64 `json:"version"`
	DurationUpdateVersion int64  `json:"durationUpdateVersion"`
	RenewExpireTime       int64  `json:"renewExpireTime"`
	ServiceFee            string `json:"serviceFee"`
}

func (s KycSettings) ToResponse() *KycSettingsResponse {
	return &KycSettingsResponse{
		Version:               s.Version,
		DurationUpdateVersion: int64(s.DurationUpdateVersion / time.Second),
		RenewExpireTime:       int64(s.RenewExpireTime / time.Second),
	}
}

func (s ProjectSettings) ToResponse() *ProjectSettingsResponse {
	fee := "0"
	if s.ServiceFee != nil {
		fee = s.ServiceFee.String()
	}
	return &ProjectSettingsResponse{
		ExpireEachProject:  int64(s.ExpireEachProject / time.Second),
		ServiceFee:         fee,
		DurationPaymentFee: int64(s.DurationPaymentFee / time.Second),
	}
}

func (s Setting) ToResponse() *SettingResponse {
	fee := "0"
	if s.ServiceFee != nil {
		fee = s.ServiceFee.String()
	}
	return &SettingResponse{
		Version:               s.Version,
		DurationUpdateVersion: int64(s.DurationUpdateVersion / time.Second),
		RenewExpireTime:       int64(s.RenewExpireTime / time.Second),
		ServiceFee:            fee,
	}
}
