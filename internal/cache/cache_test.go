package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dice-stats/internal/clock/mocks"
	"github.com/dice-stats/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type RedisStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  *RedisStore
	ctx    context.Context
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.store = NewRedisStoreFromClient(s.client, discardLogger())
	s.ctx = context.Background()
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestSetAndGet() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte(`{"a":1}`), time.Minute))

	data, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(`{"a":1}`, string(data))
}

func (s *RedisStoreTestSuite) TestMissAndExpiry() {
	_, err := s.store.Get(s.ctx, "absent")
	s.ErrorIs(err, ErrCacheMiss)

	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("v"), time.Minute))
	s.mr.FastForward(2 * time.Minute)

	_, err = s.store.Get(s.ctx, "k")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *RedisStoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("1"), 0))
	s.Require().NoError(s.store.Set(s.ctx, "b", []byte("2"), 0))
	s.Require().NoError(s.store.Delete(s.ctx, "a", "b"))

	s.False(s.mr.Exists("a"))
	s.False(s.mr.Exists("b"))
}

func (s *RedisStoreTestSuite) TestRememberThroughRedis() {
	c := New(s.store, &config.CacheConfig{TTL: time.Hour, KeyPrefix: "test:"}, discardLogger())
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"x", "y"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember(s.ctx, c, "names", load)
		s.Require().NoError(err)
		s.Equal([]string{"x", "y"}, got)
	}
	s.Equal(1, calls)
	s.True(s.mr.Exists("test:names"))
	s.Equal(time.Hour, s.mr.TTL("test:names"))
}

func TestMemoryStore_ExpiresWithClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mocks.NewMockClock(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clk.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	store := NewMemoryStore(clk)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(59 * time.Minute)
	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = store.Get(ctx, "forever")
	assert.NoError(t, err)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrCacheKeyEmpty)
}

func TestMemoryStore_SweepsExpiredOnSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mocks.NewMockClock(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clk.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	store := NewMemoryStore(clk)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))
	for i := 0; i < 1000; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("games-in-range:%d", i), []byte("v"), time.Hour))
		now = now.Add(time.Second)
	}
	assert.Equal(t, 1001, store.size())

	now = now.Add(48 * time.Hour)
	require.NoError(t, store.Set(ctx, "latest", []byte("v"), time.Hour))

	assert.Equal(t, 2, store.size())
	_, err := store.Get(ctx, "forever")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "latest")
	assert.NoError(t, err)
}

func TestRemember_DisabledAlwaysLoads(t *testing.T) {
	c := New(NewMemoryStore(nil), &config.CacheConfig{TTL: time.Hour, Disabled: true}, discardLogger())
	calls := 0
	for i := 0; i < 3; i++ {
		_, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.True(t, c.Disabled())
}

func TestRemember_NilCacheLoads(t *testing.T) {
	var c *Cache
	got, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestRemember_ErrorsAreNotCached(t *testing.T) {
	c := New(NewMemoryStore(nil), &config.CacheConfig{TTL: time.Hour}, discardLogger())
	boom := errors.New("boom")

	_, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	got, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

// joinedContext reports the first time a caller starts waiting on it
type joinedContext struct {
	context.Context
	once   sync.Once
	joined chan struct{}
}

func newJoinedContext(parent context.Context) *joinedContext {
	return &joinedContext{Context: parent, joined: make(chan struct{})}
}

func (c *joinedContext) Done() <-chan struct{} {
	c.once.Do(func() { close(c.joined) })
	return c.Context.Done()
}

func TestRemember_CollapsesConcurrentMisses(t *testing.T) {
	c := New(NewMemoryStore(nil), &config.CacheConfig{TTL: time.Hour}, discardLogger())
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 8)
	ctxs := make([]*joinedContext, len(results))
	for i := range results {
		ctxs[i] = newJoinedContext(context.Background())
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Remember(ctxs[i], c, "slow", func(context.Context) (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	for _, ctx := range ctxs {
		<-ctx.joined
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}

	_, err := Remember(context.Background(), c, "slow", func(context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemember_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New(NewMemoryStore(nil), &config.CacheConfig{TTL: time.Hour}, discardLogger())
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "fresh", nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := Remember(ctxA, c, "shared", load)
		errA <- err
	}()
	<-started

	ctxB := newJoinedContext(context.Background())
	type result struct {
		value string
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := Remember(ctxB, c, "shared", func(context.Context) (string, error) {
			return "", errors.New("second load")
		})
		resB <- result{v, err}
	}()
	<-ctxB.joined

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	got := <-resB
	require.NoError(t, got.err)
	assert.Equal(t, "fresh", got.value)

	cached, err := Remember(context.Background(), c, "shared", func(context.Context) (string, error) {
		return "", errors.New("should hit")
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", cached)
}

func TestHashIDs_OrderIndependent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, HashIDs([]uuid.UUID{a, b, c}), HashIDs([]uuid.UUID{c, a, b}))
	assert.NotEqual(t, HashIDs([]uuid.UUID{a, b}), HashIDs([]uuid.UUID{a, c}))
	assert.Len(t, HashIDs(nil), 16)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "games:2024-01-01:2024-12-31", Key("games", "2024-01-01", "2024-12-31"))
}

func TestOpenStore(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.DefaultConfig()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Redis.Addr = mr.Addr()

	store, closeStore, err := OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &RedisStore{}, store)

	cfg.Cache.Backend = config.CacheBackendMemory
	store, _, err = OpenStore(cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	cfg.Cache.Backend = "memcached"
	_, _, err = OpenStore(cfg, discardLogger())
	assert.Error(t, err)
}
