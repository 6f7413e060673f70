package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	t.Cleanup(mr.Close)

	prev := GetClient()
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestNonceStore_SaveAndConsume(t *testing.T) {
	mr := startMiniRedis(t)
	store := NewNonceStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "0xABCdef", "nonce-1"))
	assert.True(t, mr.Exists("auth:nonce:0xabcdef:nonce-1"))

	require.NoError(t, store.Consume(ctx, "0xabcdef", "nonce-1"))
	assert.ErrorIs(t, store.Consume(ctx, "0xabcdef", "nonce-1"), ErrNonceNotFound)
}

func TestNonceStore_NewChallengeKeepsPendingOnes(t *testing.T) {
	startMiniRedis(t)
	store := NewNonceStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "0x01", "victim"))
	require.NoError(t, store.Save(ctx, "0x01", "other"))

	require.NoError(t, store.Consume(ctx, "0x01", "victim"), "a later challenge must not evict a pending one")
	require.NoError(t, store.Consume(ctx, "0x01", "other"))
}

func TestNonceStore_DuplicateNonceRejected(t *testing.T) {
	startMiniRedis(t)
	store := NewNonceStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "0x01", "same"))
	assert.ErrorIs(t, store.Save(ctx, "0x01", "same"), ErrNonceExists)
	assert.ErrorIs(t, store.Consume(ctx, "0x02", "same"), ErrNonceNotFound, "nonces are bound to their address")
}

func TestNonceStore_Expires(t *testing.T) {
	mr := startMiniRedis(t)
	store := NewNonceStore(30 * time.Second)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "0x02", "n"))
	mr.FastForward(31 * time.Second)

	assert.ErrorIs(t, store.Consume(ctx, "0x02", "n"), ErrNonceNotFound)
}

func TestNonceStore_DefaultTTLAndBackendError(t *testing.T) {
	store := NewNonceStore(0)
	assert.Equal(t, 5*time.Minute, store.TTL())

	origGetDel, origSetNX := getDelNonceValue, setNXNonceValue
	t.Cleanup(func() { getDelNonceValue, setNXNonceValue = origGetDel, origSetNX })
	getDelNonceValue = func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	}
	setNXNonceValue = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		return false, errors.New("connection refused")
	}

	assert.EqualError(t, store.Consume(context.Background(), "0x03", "n"), "connection refused")
	assert.EqualError(t, store.Save(context.Background(), "0x03", "n"), "connection refused")
}
