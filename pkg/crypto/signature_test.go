package crypto

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndRecoverPersonal(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	want := ethcrypto.PubkeyToAddress(key.PublicKey)
	data := ethcrypto.Keccak256([]byte("hello"))

	sig, err := SignPersonal(data, key)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[64])

	got, err := RecoverPersonalSigner(data, sig)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// go-ethereum style V is accepted as well
	raw := append([]byte(nil), sig...)
	raw[64] -= 27
	got, err = RecoverPersonalSigner(data, raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// the prefix is part of the signed payload
	plain, err := ethcrypto.Sign(data, key)
	require.NoError(t, err)
	got, err = RecoverPersonalSigner(data, plain)
	require.NoError(t, err)
	assert.NotEqual(t, want, got)
}

func TestRecoverPersonalSigner_Malformed(t *testing.T) {
	_, err := RecoverPersonalSigner([]byte("x"), []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedSignature)

	bad := make([]byte, SignatureLength)
	bad[64] = 5
	_, err = RecoverPersonalSigner([]byte("x"), bad)
	assert.ErrorIs(t, err, ErrMalformedSignature)

	zero := make([]byte, SignatureLength)
	_, err = RecoverPersonalSigner([]byte("x"), zero)
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestDecodeSignature(t *testing.T) {
	sig := make([]byte, SignatureLength)
	sig[0] = 0xab
	decoded, err := DecodeSignature(hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, sig, decoded)

	_, err = DecodeSignature("0x1234")
	assert.ErrorIs(t, err, ErrMalformedSignature)
	_, err = DecodeSignature("not-hex")
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestParsePrivateKey(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	hexKey := hexutil.Encode(ethcrypto.FromECDSA(key))

	parsed, err := ParsePrivateKey(hexKey)
	require.NoError(t, err)
	assert.Equal(t, key.D, parsed.D)

	_, err = ParsePrivateKey("zz")
	assert.Error(t, err)
}
