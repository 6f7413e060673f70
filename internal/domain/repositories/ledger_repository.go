package repositories

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"kyc-platform.backend/internal/domain/entities"
)

// LedgerRepository records fee transfers and the balances they produce
type LedgerRepository interface {
	// Collect appends the entry and credits entry.ToAddress by entry.Amount
	Collect(ctx context.Context, entry *entities.LedgerEntry) error
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
}
