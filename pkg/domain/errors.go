package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
)

// EntityKind names the kind of persisted entity an error refers to.
type EntityKind string

const (
	KindAccountType EntityKind = "AccountType"
	KindAccount     EntityKind = "Account"
)

// NotFoundError reports that an entity of the given kind does not exist under Key.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind EntityKind
	Key  string
}

// NewNotFound builds a NotFoundError for kind and key.
func NewNotFound(kind EntityKind, key any) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: fmt.Sprint(key)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found, key: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err, or any error it wraps, is a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsNotFound extracts the NotFoundError carried by err, if any.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}
