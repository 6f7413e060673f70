package repositories

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	domainrepos "kyc-platform.backend/internal/domain/repositories"
	"kyc-platform.backend/internal/infrastructure/models"
	"kyc-platform.backend/pkg/utils"
)

type ledgerRepo struct {
	db *gorm.DB
}

// NewLedgerRepository creates the fee ledger
func NewLedgerRepository(db *gorm.DB) domainrepos.LedgerRepository {
	return &ledgerRepo{db: db}
}

// Collect must run inside a unit of work so the entry and the balance move together
func (r *ledgerRepo) Collect(ctx context.Context, entry *entities.LedgerEntry) error {
	if entry.Amount == nil || entry.Amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}
	if entry.ID == uuid.Nil {
		entry.ID = utils.NewSortableID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	db := GetDB(ctx, r.db)
	if err := db.Create(&models.LedgerEntry{
		ID:          entry.ID,
		FromAddress: entry.FromAddress.Hex(),
		ToAddress:   entry.ToAddress.Hex(),
		Amount:      entry.Amount.String(),
		Reference:   entry.Reference,
		CreatedAt:   entry.CreatedAt,
	}).Error; err != nil {
		return err
	}

	// Balances are decimal strings, so the sum is computed here under a row lock.
	var balance models.AccountBalance
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", entry.ToAddress.Hex()).
		First(&balance).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.AccountBalance{
			Address:   entry.ToAddress.Hex(),
			Balance:   entry.Amount.String(),
			UpdatedAt: entry.CreatedAt,
		}).Error
	case err != nil:
		return err
	}

	current, err := parseWei(balance.Balance)
	if err != nil {
		return err
	}
	next := new(big.Int).Add(current, entry.Amount)
	return db.Model(&models.AccountBalance{}).
		Where("address = ?", balance.Address).
		Updates(map[string]interface{}{
			"balance":    next.String(),
			"updated_at": entry.CreatedAt,
		}).Error
}

func (r *ledgerRepo) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	var balance models.AccountBalance
	err := GetDB(ctx, r.db).Where("address = ?", address.Hex()).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return parseWei(balance.Balance)
}
