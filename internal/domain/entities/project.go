package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProjectSettings controls project fees and lifetime
type ProjectSettings struct {
	ExpireEachProject  time.Duration `json:"expireEachProject"`
	ServiceFee         *big.Int      `json:"serviceFee"`
	DurationPaymentFee time.Duration `json:"durationPaymentFee"`
}

// Lifetime is the base expiry window plus the payment grace period
func (s ProjectSettings) Lifetime() time.Duration {
	return s.ExpireEachProject + s.DurationPaymentFee
}

// Project is a paid registration owned by a KYC'd account
type Project struct {
	ProjectID    string         `json:"projectId"`
	OwnerAddress common.Address `json:"ownerAddress"`
	Position     int            `json:"index"`
	PaidAmount   *big.Int       `json:"paidAmount"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ExpiresAt returns the instant from which the project is expired
func (p *Project) ExpiresAt(settings ProjectSettings) time.Time {
	return p.CreatedAt.Add(settings.Lifetime())
}

// CreateProjectInput represents the request body of createProject
type CreateProjectInput struct {
	ProjectID  string `json:"projectId" binding:"required"`
	Signature  string `json:"signature" binding:"required"`
	PaidAmount string `json:"paidAmount" binding:"required"` // wei, decimal
}

// ProjectResponse is the public shape of a project record
type ProjectResponse struct {
	ProjectID    string    `json:"projectId"`
	OwnerAddress string    `json:"ownerAddress"`
	Index        int       `json:"index"`
	PaidAmount   string    `json:"paidAmount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse converts the record to its API representation
func (p *Project) ToResponse() *ProjectResponse {
	paid := "0"
	if p.PaidAmount != nil {
		paid = p.PaidAmount.String()
	}
	return &ProjectResponse{
		ProjectID:    p.ProjectID,
		OwnerAddress: p.OwnerAddress.Hex(),
		Index:        p.Position,
		PaidAmount:   paid,
		CreatedAt:    p.CreatedAt,
	}
}
