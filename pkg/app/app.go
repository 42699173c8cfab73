package app

import (
	"log/slog"

	"github.com/amirasaad/accounts/pkg/config"
	"github.com/amirasaad/accounts/pkg/repository"
	"github.com/amirasaad/accounts/pkg/service/account"
	"github.com/amirasaad/accounts/pkg/service/accounttype"
	"github.com/amirasaad/accounts/pkg/valuation"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	AccountTypes repository.AccountTypeRepository
	// AccountTypeStore is the uncached account type store. Nil means
	// AccountTypes is authoritative.
	AccountTypeStore repository.AccountTypeRepository
	Accounts         repository.AccountRepository
	Engine           valuation.Engine
	Logger           *slog.Logger
	// Closers release infrastructure in reverse order of acquisition.
	Closers []func() error
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AccountTypeService *accounttype.Service
	AccountService     *account.Service
}

func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:               deps,
		Config:             cfg,
		AccountTypeService: accounttype.New(deps.AccountTypes, deps.Logger.With("service", "accounttype")),
		AccountService: account.New(
			deps.Accounts,
			deps.AccountTypes,
			deps.Engine,
			deps.Logger.With("service", "account"),
			account.WithTypeStore(deps.AccountTypeStore),
		),
	}
}

// Close releases every dependency, returning the first error.
func (a *App) Close() error {
	var first error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
