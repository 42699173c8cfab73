package repository

import (
	"context"

	"github.com/amirasaad/accounts/pkg/domain/account"
)

// AccountTypeRepository defines the interface for account type data access operations.
type AccountTypeRepository interface {
	// List returns every stored account type. Order is unspecified.
	List(ctx context.Context) ([]*account.AccountType, error)

	// GetByName returns the account type stored under name or a domain.NotFoundError.
	GetByName(ctx context.Context, name string) (*account.AccountType, error)

	// Create inserts a new account type. A duplicate name yields domain.ErrAlreadyExists.
	Create(ctx context.Context, at *account.AccountType) error

	// DeleteByName removes the account type stored under name or returns a domain.NotFoundError.
	DeleteByName(ctx context.Context, name string) error
}

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	// List returns the accounts matching filter. The zero filter returns every account.
	List(ctx context.Context, filter account.Filter) ([]*account.Account, error)

	// GetByID returns the account stored under id or a domain.NotFoundError.
	GetByID(ctx context.Context, id int64) (*account.Account, error)

	// Create persists acc as inactive and returns the store-assigned id.
	Create(ctx context.Context, acc *account.Account) (int64, error)

	// DeleteByID removes the account stored under id or returns a domain.NotFoundError.
	DeleteByID(ctx context.Context, id int64) error

	// Update replaces the document and active flag of the account stored under id.
	Update(ctx context.Context, id int64, acc *account.Account, active bool) error
}
