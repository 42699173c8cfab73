// Package valuation defines the narrow contract the account service uses to
// talk to the external financial-calculation engine.
package valuation

import (
	"context"
	"errors"

	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// ErrEngineUnavailable is returned when no valuation engine is configured or reachable.
var ErrEngineUnavailable = errors.New("valuation engine unavailable")

// ForecastOptions tunes a forecast run.
type ForecastOptions struct {
	ExcludeSystemTransactions bool `json:"exclude_system_transactions,omitempty"`
}

// TraceRecord is one intermediate transaction computation captured while tracing.
type TraceRecord struct {
	Date            civil.Date                 `json:"date"`
	TransactionType string                     `json:"transaction_type"`
	Amount          decimal.Decimal            `json:"amount"`
	Positions       map[string]decimal.Decimal `json:"positions,omitempty"`
}

// Result is the state of a valuation after SolveInstalment or Forecast.
// Account is the engine-mutated account: solved instalments and projected
// positions are recorded on it.
type Result struct {
	Account *account.Account `json:"account"`
	Date    civil.Date       `json:"date"`
	Trace   []TraceRecord    `json:"trace"`
}

// Valuation is a context built by an Engine for one account up to one date.
type Valuation interface {
	// SolveInstalment computes the instalment that zeroes the configured
	// target position by the valuation date.
	SolveInstalment(ctx context.Context) error
	// Forecast projects the account up to actionDate.
	Forecast(ctx context.Context, actionDate civil.Date, opts ForecastOptions) error
	Result() *Result
}

// Engine builds valuations. Trace enables per-transaction trace records.
type Engine interface {
	NewValuation(acc *account.Account, at *account.AccountType, date civil.Date, trace bool) (Valuation, error)
}

// Unavailable is the Engine used when none is configured.
type Unavailable struct{}

// NewValuation implements Engine.
func (Unavailable) NewValuation(*account.Account, *account.AccountType, civil.Date, bool) (Valuation, error) {
	return nil, ErrEngineUnavailable
}
