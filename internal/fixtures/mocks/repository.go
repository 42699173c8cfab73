package mocks

import (
	"context"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/stretchr/testify/mock"
)

// MockAccountTypeRepository is a testify mock of repository.AccountTypeRepository.
type MockAccountTypeRepository struct {
	mock.Mock
}

// NewMockAccountTypeRepository creates a mock whose expectations are asserted at cleanup.
func NewMockAccountTypeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountTypeRepository {
	m := &MockAccountTypeRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockAccountTypeRepository_Expecter gives named access to expectations.
type MockAccountTypeRepository_Expecter struct {
	mock *mock.Mock
}

func (m *MockAccountTypeRepository) EXPECT() *MockAccountTypeRepository_Expecter {
	return &MockAccountTypeRepository_Expecter{mock: &m.Mock}
}

func (m *MockAccountTypeRepository) List(ctx context.Context) ([]*account.AccountType, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]*account.AccountType)
	return out, args.Error(1)
}

func (m *MockAccountTypeRepository) GetByName(ctx context.Context, name string) (*account.AccountType, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(*account.AccountType)
	return out, args.Error(1)
}

func (m *MockAccountTypeRepository) Create(ctx context.Context, at *account.AccountType) error {
	return m.Called(ctx, at).Error(0)
}

func (m *MockAccountTypeRepository) DeleteByName(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (e *MockAccountTypeRepository_Expecter) List(ctx any) *mock.Call {
	return e.mock.On("List", ctx)
}

func (e *MockAccountTypeRepository_Expecter) GetByName(ctx, name any) *mock.Call {
	return e.mock.On("GetByName", ctx, name)
}

func (e *MockAccountTypeRepository_Expecter) Create(ctx, at any) *mock.Call {
	return e.mock.On("Create", ctx, at)
}

func (e *MockAccountTypeRepository_Expecter) DeleteByName(ctx, name any) *mock.Call {
	return e.mock.On("DeleteByName", ctx, name)
}

// MockAccountRepository is a testify mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted at cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockAccountRepository_Expecter gives named access to expectations.
type MockAccountRepository_Expecter struct {
	mock *mock.Mock
}

func (m *MockAccountRepository) EXPECT() *MockAccountRepository_Expecter {
	return &MockAccountRepository_Expecter{mock: &m.Mock}
}

func (m *MockAccountRepository) List(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]*account.Account)
	return out, args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*account.Account)
	return out, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) (int64, error) {
	args := m.Called(ctx, acc)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *MockAccountRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, id int64, acc *account.Account, active bool) error {
	return m.Called(ctx, id, acc, active).Error(0)
}

func (e *MockAccountRepository_Expecter) List(ctx, filter any) *mock.Call {
	return e.mock.On("List", ctx, filter)
}

func (e *MockAccountRepository_Expecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

func (e *MockAccountRepository_Expecter) Create(ctx, acc any) *mock.Call {
	return e.mock.On("Create", ctx, acc)
}

func (e *MockAccountRepository_Expecter) DeleteByID(ctx, id any) *mock.Call {
	return e.mock.On("DeleteByID", ctx, id)
}

func (e *MockAccountRepository_Expecter) Update(ctx, id, acc, active any) *mock.Call {
	return e.mock.On("Update", ctx, id, acc, active)
}
