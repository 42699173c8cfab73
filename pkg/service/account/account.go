// Package account provides the orchestration layer for accounts: it composes
// account and account type reads, enforces that an account's type exists and
// drives the external valuation engine for solve and value operations.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/repository"
	"github.com/amirasaad/accounts/pkg/valuation"
	"github.com/golang-sql/civil"
)

// Service provides account lifecycle and valuation operations.
type Service struct {
	accounts     repository.AccountRepository
	accountTypes repository.AccountTypeRepository
	// typeStore answers the existence check on create. It must not be cached.
	typeStore repository.AccountTypeRepository
	engine    valuation.Engine
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTypeStore makes CreateAccount resolve account types through store
// instead of accountTypes. Pass the uncached store when accountTypes is
// served from a cache.
func WithTypeStore(store repository.AccountTypeRepository) Option {
	return func(s *Service) {
		if store != nil {
			s.typeStore = store
		}
	}
}

// New creates a new account Service.
func New(
	accounts repository.AccountRepository,
	accountTypes repository.AccountTypeRepository,
	engine valuation.Engine,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if engine == nil {
		engine = valuation.Unavailable{}
	}
	s := &Service{
		accounts:     accounts,
		accountTypes: accountTypes,
		typeStore:    accountTypes,
		engine:       engine,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount persists a new account built from prototype.
//
// The account type named by the prototype must exist in the type store;
// otherwise its NotFound error is returned and nothing is stored. Only the start date, type, value
// dated properties, properties and dates are taken from the prototype: any
// positions, transactions or instalments it carries are dropped. The returned
// account carries its store-assigned id and is inactive.
func (s *Service) CreateAccount(ctx context.Context, prototype *account.Account) (*account.Account, error) {
	logger := s.logger.With("account_type", prototype.AccountTypeName)
	logger.Info("CreateAccount started")

	at, err := s.typeStore.GetByName(ctx, prototype.AccountTypeName)
	if err != nil {
		logger.Warn("CreateAccount failed: account type lookup", "error", err)
		return nil, err
	}

	acc, err := account.New().
		WithAccountType(at).
		WithStartDate(prototype.StartDate).
		WithValueDatedProperties(prototype.ValueDatedProperties).
		WithProperties(prototype.Properties).
		WithDates(prototype.Dates).
		Build()
	if err != nil {
		logger.Error("CreateAccount failed: domain error", "error", err)
		return nil, err
	}

	id, err := s.accounts.Create(ctx, acc)
	if err != nil {
		logger.Error("CreateAccount failed: repo create error", "error", err)
		return nil, err
	}
	acc.ID = id
	logger.Info("CreateAccount success", "account_id", id)
	return acc, nil
}

// GetAccounts lists the accounts matching filter.
func (s *Service) GetAccounts(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetAccounts failed", "error", err)
		return nil, err
	}
	return accounts, nil
}

// GetAccountByID returns the account stored under id.
func (s *Service) GetAccountByID(ctx context.Context, id int64) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("GetAccountByID failed", "account_id", id, "error", err)
		return nil, err
	}
	return acc, nil
}

// DeleteAccount removes the account stored under id.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	logger := s.logger.With("account_id", id)
	if err := s.accounts.DeleteByID(ctx, id); err != nil {
		logger.Warn("DeleteAccount failed", "error", err)
		return err
	}
	logger.Info("DeleteAccount success")
	return nil
}

// UpdateAccount replaces the document and active flag of the account stored under id.
func (s *Service) UpdateAccount(ctx context.Context, id int64, acc *account.Account, active bool) error {
	logger := s.logger.With("account_id", id, "active", active)
	if err := s.accounts.Update(ctx, id, acc, active); err != nil {
		logger.Warn("UpdateAccount failed", "error", err)
		return err
	}
	logger.Info("UpdateAccount success")
	return nil
}

// Solve solves the instalment of the account stored under id over
// [start date, horizon]. The solved instalment is recorded on the account
// carried by the returned result.
func (s *Service) Solve(ctx context.Context, id int64) (*valuation.Result, error) {
	logger := s.logger.With("account_id", id)
	logger.Info("Solve started")

	acc, at, err := s.load(ctx, id)
	if err != nil {
		logger.Warn("Solve failed: load", "error", err)
		return nil, err
	}
	horizon, err := acc.Horizon()
	if err != nil {
		logger.Warn("Solve failed: horizon", "error", err)
		return nil, fmt.Errorf("solve account %d: %w", id, err)
	}

	v, err := s.engine.NewValuation(acc, at, horizon, false)
	if err != nil {
		logger.Error("Solve failed: valuation", "error", err)
		return nil, fmt.Errorf("solve account %d: %w", id, err)
	}
	if err := v.SolveInstalment(ctx); err != nil {
		logger.Error("Solve failed: engine", "error", err)
		return nil, fmt.Errorf("solve account %d: %w", id, err)
	}
	logger.Info("Solve success", "horizon", horizon.String())
	return v.Result(), nil
}

// Value forecasts the account stored under id up to actionDate with tracing
// enabled. The result holds the projected account and the ordered trace.
func (s *Service) Value(ctx context.Context, id int64, actionDate civil.Date) (*valuation.Result, error) {
	logger := s.logger.With("account_id", id, "action_date", actionDate.String())
	logger.Info("Value started")

	acc, at, err := s.load(ctx, id)
	if err != nil {
		logger.Warn("Value failed: load", "error", err)
		return nil, err
	}

	v, err := s.engine.NewValuation(acc, at, actionDate, true)
	if err != nil {
		logger.Error("Value failed: valuation", "error", err)
		return nil, fmt.Errorf("value account %d: %w", id, err)
	}
	if err := v.Forecast(ctx, actionDate, valuation.ForecastOptions{}); err != nil {
		logger.Error("Value failed: engine", "error", err)
		return nil, fmt.Errorf("value account %d: %w", id, err)
	}
	result := v.Result()
	if result != nil {
		logger.Info("Value success", "trace_len", len(result.Trace))
	}
	return result, nil
}

// load fetches the account and resolves its account type.
func (s *Service) load(ctx context.Context, id int64) (*account.Account, *account.AccountType, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	at, err := s.accountTypes.GetByName(ctx, acc.AccountTypeName)
	if err != nil {
		return nil, nil, err
	}
	return acc, at, nil
}
