package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// LedgerEntry records a collected fee
type LedgerEntry struct {
	ID          uuid.UUID      `json:"id"`
	FromAddress common.Address `json:"from"`
	ToAddress   common.Address `json:"to"`
	Amount      *big.Int       `json:"amount"`
	Reference   string         `json:"reference"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// BalanceResponse is the wire shape of an account balance
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}
