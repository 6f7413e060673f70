package redis

import (
	"context"
	"errors"
	"strings"
	"time"
)

const nonceKeyPrefix = "auth:nonce:"

var (
	// ErrNonceNotFound is returned when the challenge was never issued, already used or expired
	ErrNonceNotFound = errors.New("nonce not found or expired")
	// ErrNonceExists is returned when a challenge with the same nonce is already pending
	ErrNonceExists = errors.New("nonce already pending")
)

// NonceStore keeps pending login challenges. Every challenge has its own key,
// so issuing a new one never invalidates another that is still pending.
type NonceStore struct {
	ttl time.Duration
}

var (
	setNXNonceValue  = SetNX
	getDelNonceValue = GetDel
)

// NewNonceStore creates a nonce store whose entries expire after ttl
func NewNonceStore(ttl time.Duration) *NonceStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &NonceStore{ttl: ttl}
}

// TTL returns the lifetime of a stored nonce
func (s *NonceStore) TTL() time.Duration {
	return s.ttl
}

// Save records a pending challenge for address
func (s *NonceStore) Save(ctx context.Context, address, nonce string) error {
	ok, err := setNXNonceValue(ctx, nonceKey(address, nonce), "1", s.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNonceExists
	}
	return nil
}

// Consume removes the pending challenge, failing with ErrNonceNotFound when there is none
func (s *NonceStore) Consume(ctx context.Context, address, nonce string) error {
	if _, err := getDelNonceValue(ctx, nonceKey(address, nonce)); err != nil {
		if IsNil(err) {
			return ErrNonceNotFound
		}
		return err
	}
	return nil
}

func nonceKey(address, nonce string) string {
	return nonceKeyPrefix + strings.ToLower(address) + ":" + nonce
}
