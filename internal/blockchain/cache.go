package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the key-value store behind the balance cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a Redis instance.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CachedOracle decorates a TokenBalanceOracle with a TTL cache. Cache
// failures are not fatal; the read falls through to the inner oracle.
type CachedOracle struct {
	logger *logger.Logger
	inner  models.TokenBalanceOracle
	cache  Cache
	ttl    time.Duration
}

func NewCachedOracle(inner models.TokenBalanceOracle, cache Cache, ttl time.Duration, logger *logger.Logger) *CachedOracle {
	return &CachedOracle{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedOracle) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	key := balanceKey(address)

	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		balance, ok := new(big.Int).SetString(string(cached), 10)
		if ok {
			return balance, nil
		}
		c.logger.Warn("Discarding unparseable cached balance", "address", address)
	} else if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("Balance cache read failed", "error", err)
	}

	return c.Refresh(ctx, address)
}

// Refresh reads the balance from the inner oracle and stores it, bypassing
// any cached value. The balance warmer uses this to keep entries fresh.
func (c *CachedOracle) Refresh(ctx context.Context, address string) (*big.Int, error) {
	balance, err := c.inner.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, balanceKey(address), []byte(balance.String()), c.ttl); err != nil {
		c.logger.Warn("Balance cache write failed", "error", err)
	}

	return balance, nil
}

func balanceKey(address string) string {
	return "balance:" + address
}
