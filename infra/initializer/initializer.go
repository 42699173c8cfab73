package initializer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/accounts/infra"
	"github.com/amirasaad/accounts/infra/migrations"
	infrarepo "github.com/amirasaad/accounts/infra/repository"
	infraaccount "github.com/amirasaad/accounts/infra/repository/account"
	"github.com/amirasaad/accounts/infra/repository/accounttype"
	infravaluation "github.com/amirasaad/accounts/infra/valuation"
	"github.com/amirasaad/accounts/pkg/app"
	"github.com/amirasaad/accounts/pkg/config"
	"github.com/amirasaad/accounts/pkg/valuation"
)

// openDB is swapped in tests.
var openDB = infra.NewDBConnection

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	d := &app.Deps{}
	logger := SetupLogger(cfg.Log)
	d.Logger = logger
	defer func() {
		if err != nil {
			if cerr := closeAll(d.Closers); cerr != nil {
				logger.Warn("Failed to release dependencies", "error", cerr)
			}
		}
	}()

	// Initialize database
	db, err := openDB(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	d.Closers = append(d.Closers, sqlDB.Close)

	if cfg.DB.AutoMigrate {
		if err = migrations.Up(db, logger); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return nil, err
		}
	}

	sessions := infrarepo.NewSessionManager(db, logger)
	d.Accounts = infraaccount.New(sessions, logger.With("repository", "account"))

	typeCache, closeCache, err := newAccountTypeCache(cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account type cache: %w", err)
	}
	d.Closers = append(d.Closers, closeCache)
	d.AccountTypeStore = accounttype.New(sessions, logger.With("repository", "accounttype"))
	d.AccountTypes = accounttype.NewCached(
		d.AccountTypeStore,
		typeCache,
		cfg.Cache.TTL,
		logger,
	)

	d.Engine = newEngine(cfg.Valuation, logger)
	return d, nil
}

// closeAll runs closers in reverse order and joins their errors.
func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newEngine(cfg *config.Valuation, logger *slog.Logger) valuation.Engine {
	if cfg == nil || cfg.Url == "" {
		logger.Warn("No valuation engine configured; solve and value are unavailable")
		return valuation.Unavailable{}
	}
	logger.Info("Using remote valuation engine", "url", cfg.Url, "timeout", cfg.Timeout)
	return infravaluation.New(cfg, logger.With("component", "valuation"))
}
