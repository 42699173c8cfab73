package account

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

// New creates an account repository that runs every call in its own session.
func New(sessions infrarepo.SessionFactory, logger *slog.Logger) repo.AccountRepository {
	return &repository{sessions: sessions, logger: logger}
}

// List implements repository.AccountRepository.
func (r *repository) List(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	var out []*account.Account
	err := r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		q := s.DB()
		if filter.AccountTypeName != nil {
			q = q.Where("account_type = ?", *filter.AccountTypeName)
		}
		if filter.Active != nil {
			q = q.Where("active = ?", *filter.Active)
		}
		var rows []Account
		if err := q.Order("account_id").Find(&rows).Error; err != nil {
			return infrarepo.MapGormErrorToDomain(err)
		}
		out = make([]*account.Account, 0, len(rows))
		for i := range rows {
			acc, err := mapModelToDomain(&rows[i])
			if err != nil {
				return err
			}
			out = append(out, acc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID implements repository.AccountRepository.
func (r *repository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	var out *account.Account
	err := r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		var row Account
		if err := s.DB().Where("account_id = ?", id).Take(&row).Error; err != nil {
			return infrarepo.MapNotFound(err, domain.KindAccount, id)
		}
		acc, err := mapModelToDomain(&row)
		if err != nil {
			return err
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create implements repository.AccountRepository. The account is stored inactive.
func (r *repository) Create(ctx context.Context, acc *account.Account) (int64, error) {
	if acc.AccountTypeName == "" {
		return 0, fmt.Errorf("%w: %w", domain.ErrValidation, account.ErrAccountTypeRequired)
	}
	row, err := mapDomainToModel(acc, false)
	if err != nil {
		return 0, err
	}
	err = r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		if err := s.DB().Create(row).Error; err != nil {
			return infrarepo.MapGormErrorToDomain(err)
		}
		return s.Commit()
	})
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Account stored", "account_id", row.AccountID, "account_type", row.AccountType)
	return row.AccountID, nil
}

// DeleteByID implements repository.AccountRepository.
func (r *repository) DeleteByID(ctx context.Context, id int64) error {
	return r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		res := s.DB().Where("account_id = ?", id).Delete(&Account{})
		if res.Error != nil {
			return infrarepo.MapGormErrorToDomain(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.KindAccount, id)
		}
		return s.Commit()
	})
}

// Update implements repository.AccountRepository. The id never changes.
func (r *repository) Update(ctx context.Context, id int64, acc *account.Account, active bool) error {
	row, err := mapDomainToModel(acc, active)
	if err != nil {
		return err
	}
	return r.sessions.WithSession(ctx, func(s *infrarepo.Session) error {
		res := s.DB().Model(&Account{}).Where("account_id = ?", id).Updates(map[string]any{
			"account_type": row.AccountType,
			"active":       row.Active,
			"model":        row.Model,
		})
		if res.Error != nil {
			return infrarepo.MapGormErrorToDomain(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.KindAccount, id)
		}
		return s.Commit()
	})
}

// mapDomainToModel encodes acc without its id; the key column owns it.
func mapDomainToModel(acc *account.Account, active bool) (*Account, error) {
	doc := *acc
	doc.ID = 0
	doc.Active = active
	encoded, err := infrarepo.EncodeDocument(&doc)
	if err != nil {
		return nil, err
	}
	return &Account{
		AccountType: acc.AccountTypeName,
		Active:      active,
		Model:       encoded,
	}, nil
}

func mapModelToDomain(row *Account) (*account.Account, error) {
	var acc account.Account
	if err := infrarepo.DecodeDocument(row.Model, &acc); err != nil {
		return nil, fmt.Errorf("account %d: %w", row.AccountID, err)
	}
	acc.ID = row.AccountID
	acc.Active = row.Active
	if acc.AccountTypeName == "" {
		acc.AccountTypeName = row.AccountType
	}
	acc.Normalize()
	return &acc, nil
}
