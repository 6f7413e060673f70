package models

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromAddress string    `gorm:"type:varchar(42);not null;index"`
	ToAddress   string    `gorm:"type:varchar(42);not null;index"`
	Amount      string    `gorm:"type:varchar(78);not null"`
	Reference   string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// AccountBalance is the running credited balance of an account, in wei
type AccountBalance struct {
	Address   string `gorm:"type:varchar(42);primaryKey"`
	Balance   string `gorm:"type:varchar(78);not null;default:'0'"`
	UpdatedAt time.Time
}

func (AccountBalance) TableName() string {
	return "account_balances"
}

// All lists every model handled by AutoMigrate
func All() []interface{} {
	return []interface{}{
		&PlatformSetting{},
		&KycMember{},
		&Project{},
		&LedgerEntry{},
		&AccountBalance{},
	}
}
