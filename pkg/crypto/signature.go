package crypto

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of an [R || S || V] secp256k1 signature
const SignatureLength = 65

var ErrMalformedSignature = errors.New("malformed signature")

// DecodeSignature parses a 0x-prefixed 65-byte hex signature
func DecodeSignature(sigHex string) ([]byte, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(sigHex))
	if err != nil || len(sig) != SignatureLength {
		return nil, ErrMalformedSignature
	}
	return sig, nil
}

// RecoverPersonalSigner recovers the address that personal-signed data.
// V may be in {0,1} (go-ethereum) or {27,28} (web3.eth.sign, eth_sign).
func RecoverPersonalSigner(data, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, ErrMalformedSignature
	}
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return common.Address{}, ErrMalformedSignature
	}

	pub, err := ethcrypto.SigToPub(accounts.TextHash(data), normalized)
	if err != nil {
		return common.Address{}, ErrMalformedSignature
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// SignPersonal signs data with the personal-message prefix and returns
// the signature with V in {27,28}, matching what wallets produce.
func SignPersonal(data []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(data), key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// ParsePrivateKey parses a hex private key with or without 0x prefix
func ParsePrivateKey(keyHex string) (*ecdsa.PrivateKey, error) {
	return ethcrypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
}
