package repositories

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/common"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"kyc-platform.backend/internal/domain/entities"
	domainerrors "kyc-platform.backend/internal/domain/errors"
	"kyc-platform.backend/pkg/redis"
)

type countingSettingsRepo struct {
	settings *entities.PlatformSettings
	getCalls int
	saveErr  error
}

func (s *countingSettingsRepo) Get(context.Context) (*entities.PlatformSettings, error) {
	s.getCalls++
	if s.settings == nil {
		return nil, domainerrors.ErrNotFound
	}
	copied := *s.settings
	return &copied, nil
}

func (s *countingSettingsRepo) Save(_ context.Context, in *entities.PlatformSettings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *in
	s.settings = &copied
	return nil
}

// txSettingsRepo keeps writes made inside a transaction invisible to other readers until commit
type txSettingsRepo struct {
	committed *entities.PlatformSettings
	pending   *entities.PlatformSettings
	getCalls  int
}

func (s *txSettingsRepo) Get(ctx context.Context) (*entities.PlatformSettings, error) {
	s.getCalls++
	current := s.committed
	if InTransaction(ctx) && s.pending != nil {
		current = s.pending
	}
	copied := *current
	return &copied, nil
}

func (s *txSettingsRepo) Save(_ context.Context, in *entities.PlatformSettings) error {
	copied := *in
	s.pending = &copied
	return nil
}

func (s *txSettingsRepo) commit() {
	if s.pending != nil {
		s.committed, s.pending = s.pending, nil
	}
}

func withCommitTracking(t *testing.T, next *txSettingsRepo) {
	t.Helper()
	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error {
		if err := origCommit(tx); err != nil {
			return err
		}
		next.commit()
		return nil
	}
}

func startSettingsCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	t.Cleanup(mr.Close)

	prev := redis.GetClient()
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(prev) })
	return mr
}

func sampleSettings(version uint64) *entities.PlatformSettings {
	return &entities.PlatformSettings{
		Owner: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Kyc:   entities.KycSettings{Version: version, RenewExpireTime: time.Hour},
		Project: entities.ProjectSettings{
			ExpireEachProject:  2 * time.Hour,
			ServiceFee:         big.NewInt(100),
			DurationPaymentFee: time.Minute,
		},
	}
}

func TestCachedSettingsRepository_ReadThroughAndInvalidate(t *testing.T) {
	mr := startSettingsCache(t)
	next := &countingSettingsRepo{settings: sampleSettings(1)}
	repo := NewCachedSettingsRepository(next, time.Minute)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.Kyc.Version)
	require.True(t, mr.Exists(settingsCacheKey))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "100", got.Project.ServiceFee.String())
	require.Equal(t, 1, next.getCalls, "second read must hit the cache")

	require.NoError(t, repo.Save(ctx, sampleSettings(2)))
	require.False(t, mr.Exists(settingsCacheKey))
	gen, err := mr.Get(settingsCacheGenKey)
	require.NoError(t, err)
	require.Equal(t, "1", gen)

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Kyc.Version)
	require.Equal(t, 2, next.getCalls)
}

func TestCachedSettingsRepository_MissingSettingsNotCached(t *testing.T) {
	mr := startSettingsCache(t)
	repo := NewCachedSettingsRepository(&countingSettingsRepo{}, time.Minute)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.False(t, mr.Exists(settingsCacheKey))
}

func TestCachedSettingsRepository_CorruptEntryFallsBack(t *testing.T) {
	mr := startSettingsCache(t)
	require.NoError(t, mr.Set(settingsCacheKey, "{not-json"))
	next := &countingSettingsRepo{settings: sampleSettings(3)}
	repo := NewCachedSettingsRepository(next, time.Minute)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), got.Kyc.Version)
	require.Equal(t, 1, next.getCalls)
}

func TestCachedSettingsRepository_CacheErrorsAreTolerated(t *testing.T) {
	origGet, origSet, origDel, origIncr := settingsCacheGet, settingsCacheSet, settingsCacheDel, settingsCacheIncr
	t.Cleanup(func() {
		settingsCacheGet, settingsCacheSet, settingsCacheDel, settingsCacheIncr = origGet, origSet, origDel, origIncr
	})
	boom := errors.New("redis down")
	settingsCacheGet = func(context.Context, string) (string, error) { return "", boom }
	settingsCacheSet = func(context.Context, string, interface{}, time.Duration) error { return boom }
	settingsCacheDel = func(context.Context, string) error { return boom }
	settingsCacheIncr = func(context.Context, string) (int64, error) { return 0, boom }

	next := &countingSettingsRepo{settings: sampleSettings(1)}
	repo := NewCachedSettingsRepository(next, time.Minute)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sampleSettings(2)))

	next.saveErr = errors.New("db down")
	require.EqualError(t, repo.Save(ctx, sampleSettings(3)), "db down")
}

func TestCachedSettingsRepository_SaveInTxInvalidatesAfterCommit(t *testing.T) {
	mr := startSettingsCache(t)
	next := &txSettingsRepo{committed: sampleSettings(1)}
	withCommitTracking(t, next)
	repo := NewCachedSettingsRepository(next, time.Minute)
	uow := &UnitOfWorkImpl{db: newTestDB(t)}
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.Kyc.Version)

	err = uow.Do(ctx, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, sampleSettings(2)); err != nil {
			return err
		}

		// A reader outside the transaction still gets the committed row.
		outside, err := repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), outside.Kyc.Version)

		// Evicted mid-transaction: the outside reader refills the cache from the old row.
		mr.Del(settingsCacheKey)
		outside, err = repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), outside.Kyc.Version)
		require.True(t, mr.Exists(settingsCacheKey))

		inside, err := repo.Get(txCtx)
		require.NoError(t, err)
		require.Equal(t, uint64(2), inside.Kyc.Version)
		return nil
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Kyc.Version, "pre-commit cache fill must not survive the commit")

	calls := next.getCalls
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Kyc.Version)
	require.Equal(t, calls, next.getCalls, "fresh entry is served from the cache")
}

func TestCachedSettingsRepository_ReadInTxBypassesCache(t *testing.T) {
	mr := startSettingsCache(t)
	next := &txSettingsRepo{committed: sampleSettings(1)}
	repo := NewCachedSettingsRepository(next, time.Minute)
	uow := &UnitOfWorkImpl{db: newTestDB(t)}

	err := uow.Do(context.Background(), func(txCtx context.Context) error {
		require.NoError(t, repo.Save(txCtx, sampleSettings(5)))
		got, err := repo.Get(txCtx)
		require.NoError(t, err)
		require.Equal(t, uint64(5), got.Kyc.Version)
		require.False(t, mr.Exists(settingsCacheKey), "uncommitted settings must not be cached")
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.Kyc.Version)
}

func TestCachedSettingsRepository_RejectsEntryFromOlderGeneration(t *testing.T) {
	mr := startSettingsCache(t)
	next := &countingSettingsRepo{settings: sampleSettings(1)}
	repo := NewCachedSettingsRepository(next, time.Minute)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	require.NoError(t, err)
	_, err = mr.Incr(settingsCacheGenKey, 1)
	require.NoError(t, err)
	next.settings = sampleSettings(4)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(4), got.Kyc.Version)
	require.Equal(t, 2, next.getCalls)
}
