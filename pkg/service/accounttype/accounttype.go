// Package accounttype provides the service layer over stored account type templates.
package accounttype

import (
	"context"
	"log/slog"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/repository"
)

// Service exposes account type operations with structured logging.
type Service struct {
	repo   repository.AccountTypeRepository
	logger *slog.Logger
}

// New creates a new account type Service.
func New(repo repository.AccountTypeRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAccountTypes returns every stored account type.
func (s *Service) GetAccountTypes(ctx context.Context) ([]*account.AccountType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("GetAccountTypes failed", "error", err)
		return nil, err
	}
	s.logger.Debug("GetAccountTypes success", "count", len(types))
	return types, nil
}

// GetAccountTypeByName returns the named account type or a NotFound error.
func (s *Service) GetAccountTypeByName(ctx context.Context, name string) (*account.AccountType, error) {
	at, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Warn("GetAccountTypeByName failed", "name", name, "error", err)
		return nil, err
	}
	return at, nil
}

// CreateAccountType stores a new account type.
func (s *Service) CreateAccountType(ctx context.Context, at *account.AccountType) error {
	logger := s.logger.With("name", at.Name)
	logger.Info("CreateAccountType started")
	at.Normalize()
	if err := s.repo.Create(ctx, at); err != nil {
		logger.Error("CreateAccountType failed", "error", err)
		return err
	}
	logger.Info("CreateAccountType success")
	return nil
}

// DeleteAccountType removes the named account type or returns a NotFound error.
func (s *Service) DeleteAccountType(ctx context.Context, name string) error {
	logger := s.logger.With("name", name)
	logger.Info("DeleteAccountType started")
	if err := s.repo.DeleteByName(ctx, name); err != nil {
		logger.Error("DeleteAccountType failed", "error", err)
		return err
	}
	logger.Info("DeleteAccountType success")
	return nil
}
