package models

import "time"

// PlatformSetting is the singleton settings row. Durations are stored in seconds.
type PlatformSetting struct {
	ID                    uint   `gorm:"primaryKey"`
	OwnerAddress          string `gorm:"type:varchar(42);not null"`
	KycVersion            uint64 `gorm:"not null;default:1"`
	DurationUpdateVersion int64  `gorm:"not null;default:0"`
	RenewExpireTime       int64  `gorm:"not null;default:0"`
	ExpireEachProject     int64  `gorm:"not null;default:0"`
	ServiceFee            string `gorm:"type:varchar(78);not null;default:'0'"`
	DurationPaymentFee    int64  `gorm:"not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (PlatformSetting) TableName() string {
	return "platform_settings"
}
