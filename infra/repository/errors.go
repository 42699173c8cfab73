package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/accounts/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// The original error stays in the chain so callers can still inspect it.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

// MapNotFound turns gorm.ErrRecordNotFound into a NotFoundError for kind and key
// and maps every other error with MapGormErrorToDomain.
func MapNotFound(err error, kind domain.EntityKind, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(kind, key)
	}
	return MapGormErrorToDomain(err)
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return s.DB().Create(rec).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
