package usecases_test

import (
	"crypto/ecdsa"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"kyc-platform.backend/internal/domain/entities"
	"kyc-platform.backend/pkg/crypto"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newSigner(t *testing.T) *signer {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	return &signer{key: key, address: ethcrypto.PubkeyToAddress(key.PublicKey)}
}

func (s *signer) signHash(t *testing.T, hash common.Hash) string {
	t.Helper()
	sig, err := crypto.SignPersonal(hash.Bytes(), s.key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func (s *signer) signText(t *testing.T, text string) string {
	t.Helper()
	sig, err := crypto.SignPersonal([]byte(text), s.key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

const twoYears = 2 * 365 * 24 * time.Hour

// defaultSettings mirrors a freshly deployed registry: version 1, two-year KYC validity, 0.002 ether fee
func defaultSettings(owner common.Address) *entities.PlatformSettings {
	return &entities.PlatformSettings{
		Owner: owner,
		Kyc: entities.KycSettings{
			Version:               1,
			DurationUpdateVersion: 30 * 24 * time.Hour,
			RenewExpireTime:       twoYears,
		},
		Project: entities.ProjectSettings{
			ExpireEachProject:  365 * 24 * time.Hour,
			ServiceFee:         big.NewInt(2_000_000_000_000_000),
			DurationPaymentFee: 30 * 24 * time.Hour,
		},
	}
}
