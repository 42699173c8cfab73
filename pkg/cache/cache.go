package cache

import (
	"context"
	"time"

	"github.com/amirasaad/accounts/pkg/domain/account"
)

// AccountTypeCache defines the interface for caching account types by name.
// Get returns (nil, nil) on a miss.
type AccountTypeCache interface {
	Get(ctx context.Context, name string) (*account.AccountType, error)
	Set(ctx context.Context, at *account.AccountType, ttl time.Duration) error
	Delete(ctx context.Context, name string) error
}
