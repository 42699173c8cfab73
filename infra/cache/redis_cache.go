package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements AccountTypeCache using Redis.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache from a redis URL such as redis://localhost:6379/0.
func NewRedisCache(url, prefix string, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisCacheWithClient(redis.NewClient(opt), prefix, logger), nil
}

// NewRedisCacheWithClient creates a RedisCache over an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, prefix string, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisCache) key(name string) string {
	return r.prefix + "account_type:" + name
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, name string) (*account.AccountType, error) {
	val, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", name)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", name, "error", err)
		return nil, err
	}
	var at account.AccountType
	if err := json.Unmarshal(val, &at); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", name, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "key", name)
	return &at, nil
}

func (r *RedisCache) Set(ctx context.Context, at *account.AccountType, ttl time.Duration) error {
	data, err := json.Marshal(at)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", at.Name, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(at.Name), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", at.Name, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", at.Name, "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", name, "error", err)
		return err
	}
	r.logger.Debug("Redis cache delete", "key", name)
	return nil
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
