package mocks

import (
	"context"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/valuation"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/mock"
)

// MockEngine is a testify mock of valuation.Engine.
type MockEngine struct {
	mock.Mock
}

// NewMockEngine creates a mock whose expectations are asserted at cleanup.
func NewMockEngine(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEngine {
	m := &MockEngine{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEngine) NewValuation(
	acc *account.Account,
	at *account.AccountType,
	date civil.Date,
	trace bool,
) (valuation.Valuation, error) {
	args := m.Called(acc, at, date, trace)
	v, _ := args.Get(0).(valuation.Valuation)
	return v, args.Error(1)
}

// MockValuation is a testify mock of valuation.Valuation.
type MockValuation struct {
	mock.Mock
}

// NewMockValuation creates a mock whose expectations are asserted at cleanup.
func NewMockValuation(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockValuation {
	m := &MockValuation{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockValuation) SolveInstalment(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockValuation) Forecast(ctx context.Context, actionDate civil.Date, opts valuation.ForecastOptions) error {
	return m.Called(ctx, actionDate, opts).Error(0)
}

func (m *MockValuation) Result() *valuation.Result {
	r, _ := m.Called().Get(0).(*valuation.Result)
	return r
}
