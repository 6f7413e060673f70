package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// KycSettings controls how long an issued KYC approval stays valid
type KycSettings struct {
	Version               uint64        `json:"version"`
	DurationUpdateVersion time.Duration `json:"durationUpdateVersion"`
	RenewExpireTime       time.Duration `json:"renewExpireTime"`
}

// KycMember is the approval bound to a single account
type KycMember struct {
	UID          string         `json:"uid"`
	OwnerAddress common.Address `json:"userAddress"`
	Version      uint64         `json:"version"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ExpiresAt returns the instant from which the approval is no longer valid
func (m *KycMember) ExpiresAt(settings KycSettings) time.Time {
	return m.CreatedAt.Add(settings.RenewExpireTime)
}

// CreateKycMemberInput represents the request body of createKYCMember
type CreateKycMemberInput struct {
	UID       string `json:"uid" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// KycMemberResponse is the public shape of a KYC record
type KycMemberResponse struct {
	UID         string    `json:"uid"`
	UserAddress string    `json:"userAddress"`
	Version     uint64    `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts the record to its API representation
func (m *KycMember) ToResponse() *KycMemberResponse {
	return &KycMemberResponse{
		UID:         m.UID,
		UserAddress: m.OwnerAddress.Hex(),
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
	}
}
