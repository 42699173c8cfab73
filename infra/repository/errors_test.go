package repository

import (
	"errors"
	"testing"

	"github.com/amirasaad/accounts/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	other := errors.New("some other error")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil error returns nil", input: nil, expected: nil},
		{name: "duplicate key maps to ErrAlreadyExists", input: gorm.ErrDuplicatedKey, expected: domain.ErrAlreadyExists},
		{name: "record not found maps to ErrNotFound", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "wrapped duplicate key maps correctly", input: errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), expected: domain.ErrAlreadyExists},
		{name: "non-GORM error returns original", input: other, expected: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.input)
		})
	}
}

func TestMapNotFound(t *testing.T) {
	t.Parallel()

	err := MapNotFound(gorm.ErrRecordNotFound, domain.KindAccount, int64(42))
	nf, ok := domain.AsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindAccount, nf.Kind)
	assert.Equal(t, "42", nf.Key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = MapNotFound(gorm.ErrDuplicatedKey, domain.KindAccountType, "saving")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, ok = domain.AsNotFound(err)
	assert.False(t, ok)
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrDuplicatedKey }), domain.ErrAlreadyExists)
}
