package usecases

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	domainerrors "kyc-platform.backend/internal/domain/errors"
)

// ParseAddress parses a 0x-prefixed hex account address
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: invalid address %q", domainerrors.ErrInvalidInput, s)
	}
	return common.HexToAddress(s), nil
}

// parseWeiAmount parses a non-negative decimal wei amount
func parseWeiAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid amount %q", domainerrors.ErrInvalidInput, s)
	}
	return v, nil
}

// maxDurationSeconds is the longest duration, in seconds, a time.Duration can hold
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

func validateDurations(seconds ...int64) error {
	for _, s := range seconds {
		if s < 0 {
			return fmt.Errorf("%w: durations must not be negative", domainerrors.ErrInvalidInput)
		}
		if s > maxDurationSeconds {
			return fmt.Errorf("%w: duration %d exceeds %d seconds", domainerrors.ErrInvalidInput, s, maxDurationSeconds)
		}
	}
	return nil
}

// validateLifetime bounds a project's validity plus its payment grace period
func validateLifetime(expireEachProject, durationPaymentFee int64) error {
	if err := validateDurations(expireEachProject, durationPaymentFee); err != nil {
		return err
	}
	if expireEachProject > maxDurationSeconds-durationPaymentFee {
		return fmt.Errorf("%w: project lifetime exceeds %d seconds", domainerrors.ErrInvalidInput, maxDurationSeconds)
	}
	return nil
}

func validateVersion(version uint64) error {
	if version < 1 {
		return fmt.Errorf("%w: version must be at least 1", domainerrors.ErrInvalidInput)
	}
	return nil
}
