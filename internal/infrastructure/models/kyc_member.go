package models

import "time"

type KycMember struct {
	OwnerAddress string    `gorm:"type:varchar(42);primaryKey"`
	UID          string    `gorm:"column:uid;type:varchar(255);uniqueIndex;not null"`
	Version      uint64    `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (KycMember) TableName() string {
	return "kyc_members"
}
