package entities

import "time"

// ChallengeInput requests a sign-in nonce for a wallet
type ChallengeInput struct {
	Address string `json:"address" binding:"required"`
}

// ChallengeResponse carries the message the wallet must personal-sign
type ChallengeResponse struct {
	Address   string    `json:"address"`
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// WalletLoginInput proves control of an address by signing the message of the named challenge
type WalletLoginInput struct {
	Address   string `json:"address" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	Address     string    `json:"address"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
