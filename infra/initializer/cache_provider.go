package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	infracache "github.com/amirasaad/accounts/infra/cache"
	"github.com/amirasaad/accounts/pkg/cache"
	"github.com/amirasaad/accounts/pkg/config"
)

// newAccountTypeCache returns the cache configured by cfg.Provider along with a
// function releasing it.
func newAccountTypeCache(cfg *config.Cache, logger *slog.Logger) (cache.AccountTypeCache, func() error, error) {
	switch cfg.Provider {
	case "", "memory":
		c := infracache.NewMemoryCache(cfg.TTL)
		logger.Info("Using in-memory account type cache", "ttl", cfg.TTL)
		return c, c.Close, nil
	case "redis":
		c, err := infracache.NewRedisCache(cfg.Url, cfg.Prefix, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			logger.Warn("Redis is not reachable at startup", "error", err)
		}
		logger.Info("Using redis account type cache", "prefix", cfg.Prefix, "ttl", cfg.TTL)
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache provider %q", cfg.Provider)
	}
}
