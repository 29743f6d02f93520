package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

type memoryCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	val, ok := m.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return val, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.entries[key] = value
	return nil
}

type stubOracle struct {
	balance *big.Int
	err     error
	calls   int
}

func (s *stubOracle) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return new(big.Int).Set(s.balance), nil
}

func newCachedOracle(t *testing.T, inner *stubOracle, cache Cache) *CachedOracle {
	t.Helper()
	log, err := logger.NewLogger(true)
	require.NoError(t, err)
	return NewCachedOracle(inner, cache, time.Minute, log)
}

const testAddr = "0x1111111111111111111111111111111111111111"

func TestCachedOracleMissReadsInnerAndStores(t *testing.T) {
	inner := &stubOracle{balance: big.NewInt(42)}
	cache := newMemoryCache()
	oracle := newCachedOracle(t, inner, cache)

	balance, err := oracle.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.Int64())
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, []byte("42"), cache.entries["balance:"+testAddr])
}

func TestCachedOracleHitSkipsInner(t *testing.T) {
	inner := &stubOracle{balance: big.NewInt(42)}
	cache := newMemoryCache()
	cache.entries["balance:"+testAddr] = []byte("500000000000000000000")
	oracle := newCachedOracle(t, inner, cache)

	balance, err := oracle.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000000", balance.String())
	assert.Zero(t, inner.calls)
}

func TestCachedOracleUnparseableEntryFallsThrough(t *testing.T) {
	inner := &stubOracle{balance: big.NewInt(7)}
	cache := newMemoryCache()
	cache.entries["balance:"+testAddr] = []byte("not a number")
	oracle := newCachedOracle(t, inner, cache)

	balance, err := oracle.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance.Int64())
	assert.Equal(t, 1, inner.calls)
}

func TestCachedOracleCacheOutageFallsThrough(t *testing.T) {
	inner := &stubOracle{balance: big.NewInt(7)}
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	oracle := newCachedOracle(t, inner, cache)

	balance, err := oracle.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance.Int64())
}

func TestCachedOracleInnerFailurePropagates(t *testing.T) {
	inner := &stubOracle{err: errors.New("rpc unavailable")}
	cache := newMemoryCache()
	oracle := newCachedOracle(t, inner, cache)

	_, err := oracle.GetBalance(context.Background(), testAddr)
	assert.Error(t, err)
	assert.Zero(t, cache.sets)
}

func TestRefreshBypassesCachedValue(t *testing.T) {
	inner := &stubOracle{balance: big.NewInt(99)}
	cache := newMemoryCache()
	cache.entries["balance:"+testAddr] = []byte("1")
	oracle := newCachedOracle(t, inner, cache)

	balance, err := oracle.Refresh(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(99), balance.Int64())
	assert.Equal(t, []byte("99"), cache.entries["balance:"+testAddr])
}
