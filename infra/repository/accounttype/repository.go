package accounttype

import (
	"context"
	"fmt"
	"log/slog"

	infrarepo "github.com/amirasaad/accounts/infra/repository"
	"github.com/amirasaad/accounts/pkg/domain"
	"github.com/amirasaad/accounts/pkg/domain/account"
	repo "github.com/amirasaad/accounts/pkg/repository"
)

type repository struct {
	sessions infrarepo.SessionFactory
	logger   *slog.Logger
}

// New creates an account type repository that runs every call in its own session.
func New(sessions infrarepo.SessionFactory, logger *slog.Logger) repo.AccountTypeRepository {
	return &repository{sessions: sessions, logger: logger}
}

// List implements repository.AccountTypeRepository.
func (r *repository) List(ctx context.Context) ([]*account.AccountType, error) {
	var out []*account.AccountType
	err := r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		var rows []AccountType
		if err := s.DB().Find(&rows).Error; err != nil {
			return infrarepo.MapGormErrorToDomain(err)
		}
		out = make([]*account.AccountType, 0, len(rows))
		for i := range rows {
			at, err := mapModelToDomain(&rows[i])
			if err != nil {
				return err
			}
			out = append(out, at)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByName implements repository.AccountTypeRepository.
func (r *repository) GetByName(ctx context.Context, name string) (*account.AccountType, error) {
	var out *account.AccountType
	err := r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		var row AccountType
		if err := s.DB().Where("name = ?", name).Take(&row).Error; err != nil {
			return infrarepo.MapNotFound(err, domain.KindAccountType, name)
		}
		at, err := mapModelToDomain(&row)
		if err != nil {
			return err
		}
		out = at
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create implements repository.AccountTypeRepository.
func (r *repository) Create(ctx context.Context, at *account.AccountType) error {
	if err := at.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	row, err := mapDomainToModel(at)
	if err != nil {
		return err
	}
	return r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		if err := s.DB().Create(row).Error; err != nil {
			return infrarepo.MapGormErrorToDomain(err)
		}
		if err := s.Commit(); err != nil {
			return err
		}
		r.logger.Debug("Account type stored", "name", at.Name)
		return nil
	})
}

// DeleteByName implements repository.AccountTypeRepository.
func (r *repository) DeleteByName(ctx context.Context, name string) error {
	return r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		res := s.DB().Where("name = ?", name).Delete(&AccountType{})
		if res.Error != nil {
			return infrarepo.MapGormErrorToDomain(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.KindAccountType, name)
		}
		return s.Commit()
	})
}

func mapDomainToModel(at *account.AccountType) (*AccountType, error) {
	doc, err := infrarepo.EncodeDocument(at)
	if err != nil {
		return nil, err
	}
	return &AccountType{Name: at.Name, Model: doc}, nil
}

func mapModelToDomain(row *AccountType) (*account.AccountType, error) {
	var at account.AccountType
	if err := infrarepo.DecodeDocument(row.Model, &at); err != nil {
		return nil, fmt.Errorf("account type %q: %w", row.Name, err)
	}
	at.Name = row.Name
	at.Normalize()
	return &at, nil
}
