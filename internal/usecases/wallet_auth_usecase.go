package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/pkg/crypto"
	"kyc-platform.backend/pkg/logger"
	"kyc-platform.backend/pkg/redis"
)

// NonceStore keeps pending sign-in challenges, each under its own nonce
type NonceStore interface {
	Save(ctx context.Context, address, nonce string) error
	Consume(ctx context.Context, address, nonce string) error
	TTL() time.Duration
}

// TokenIssuer issues session tokens for a verified address
type TokenIssuer interface {
	GenerateAccessToken(address string) (string, time.Time, error)
}

var generateNonce = crypto.GenerateNonce

// SignInMessage is the text a wallet personal-signs to log in
func SignInMessage(address common.Address, nonce string) string {
	return fmt.Sprintf("Sign in to KYC Platform\nAddress: %s\nNonce: %s", address.Hex(), nonce)
}

// WalletAuthUsecase authenticates callers by wallet signature
type WalletAuthUsecase struct {
	nonces NonceStore
	tokens TokenIssuer
	clock  Clock
}

// NewWalletAuthUsecase creates a new wallet auth usecase
func NewWalletAuthUsecase(nonces NonceStore, tokens TokenIssuer, clock Clock) *WalletAuthUsecase {
	if clock == nil {
		clock = SystemClock
	}
	return &WalletAuthUsecase{nonces: nonces, tokens: tokens, clock: clock}
}

// Challenge issues a single-use nonce for address
func (u *WalletAuthUsecase) Challenge(ctx context.Context, input *entities.ChallengeInput) (*entities.ChallengeResponse, error) {
	address, err := ParseAddress(input.Address)
	if err != nil {
		return nil, err
	}

	nonce, err := generateNonce()
	if err != nil {
		return nil, err
	}
	if err := u.nonces.Save(ctx, address.Hex(), nonce); err != nil {
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}

	return &entities.ChallengeResponse{
		Address:   address.Hex(),
		Nonce:     nonce,
		Message:   SignInMessage(address, nonce),
		ExpiresAt: u.clock.Now().Add(u.nonces.TTL()),
	}, nil
}

// Login verifies the signed challenge and returns an access token
func (u *WalletAuthUsecase) Login(ctx context.Context, input *entities.WalletLoginInput) (*entities.AuthResponse, error) {
	address, err := ParseAddress(input.Address)
	if err != nil {
		return nil, err
	}

	nonce := strings.TrimSpace(input.Nonce)
	if nonce == "" {
		return nil, fmt.Errorf("%w: nonce is required", domainerrors.ErrInvalidInput)
	}

	if err := u.nonces.Consume(ctx, address.Hex(), nonce); err != nil {
		if errors.Is(err, redis.ErrNonceNotFound) {
			return nil, fmt.Errorf("%w: no pending challenge", domainerrors.ErrUnauthenticated)
		}
		return nil, err
	}

	sig, err := crypto.DecodeSignature(input.Signature)
	if err != nil {
		return nil, domainerrors.ErrInvalidSignature
	}
	signer, err := crypto.RecoverPersonalSigner([]byte(SignInMessage(address, nonce)), sig)
	if err != nil || signer != address {
		logger.Warn(ctx, "Wallet login signature mismatch", zap.String("address", address.Hex()))
		return nil, domainerrors.ErrInvalidSignature
	}

	token, expiresAt, err := u.tokens.GenerateAccessToken(address.Hex())
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Wallet signed in", zap.String("address", address.Hex()))
	return &entities.AuthResponse{
		AccessToken: token,
		Address:     address.Hex(),
		ExpiresAt:   expiresAt,
	}, nil
}
