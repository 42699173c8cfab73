package accounttype

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/accounts/pkg/cache"
	"github.com/amirasaad/accounts/pkg/domain/account"
	repo "github.com/amirasaad/accounts/pkg/repository"
)

type cachedRepository struct {
	next   repo.AccountTypeRepository
	cache  cache.AccountTypeCache
	ttl    time.Duration
	logger *slog.Logger

	// generations counts invalidations per name. A read that raced with an
	// invalidation does not write its result back.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewCached decorates next with a read-through cache for GetByName.
// Create and DeleteByName invalidate the cached entry. Cache failures are
// logged and never fail the call.
func NewCached(
	next repo.AccountTypeRepository,
	c cache.AccountTypeCache,
	ttl time.Duration,
	logger *slog.Logger,
) repo.AccountTypeRepository {
	return &cachedRepository{
		next:        next,
		cache:       c,
		ttl:         ttl,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

func (r *cachedRepository) List(ctx context.Context) ([]*account.AccountType, error) {
	return r.next.List(ctx)
}

func (r *cachedRepository) GetByName(ctx context.Context, name string) (*account.AccountType, error) {
	at, err := r.cache.Get(ctx, name)
	if err != nil {
		r.logger.Warn("Account type cache get failed", "name", name, "error", err)
	}
	if at != nil {
		return at, nil
	}
	r.mu.Lock()
	gen := r.generations[name]
	r.mu.Unlock()

	at, err = r.next.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[name] != gen {
		return at, nil
	}
	if err := r.cache.Set(ctx, at, r.ttl); err != nil {
		r.logger.Warn("Account type cache set failed", "name", name, "error", err)
	}
	return at, nil
}

func (r *cachedRepository) Create(ctx context.Context, at *account.AccountType) error {
	if err := r.next.Create(ctx, at); err != nil {
		return err
	}
	r.invalidate(ctx, at.Name)
	return nil
}

func (r *cachedRepository) DeleteByName(ctx context.Context, name string) error {
	err := r.next.DeleteByName(ctx, name)
	r.invalidate(ctx, name)
	return err
}

func (r *cachedRepository) invalidate(ctx context.Context, name string) {
	r.mu.Lock()
	r.generations[name]++
	r.mu.Unlock()
	if err := r.cache.Delete(ctx, name); err != nil {
		r.logger.Warn("Account type cache delete failed", "name", name, "error", err)
	}
}
