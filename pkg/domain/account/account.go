package account

import (
	"errors"
	"fmt"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// EndDateKey is the entry of Account.Dates that bounds a valuation when present.
const EndDateKey = "end_date"

var (
	// ErrAccountTypeRequired is returned when an account does not name its account type.
	ErrAccountTypeRequired = errors.New("account type name is required")

	// ErrNoHorizon is returned when an account has neither an end date nor an instalment schedule.
	ErrNoHorizon = errors.New("account has no end date and no instalments")

	// ErrInvalidInstalmentDate is returned when an instalment key is not an ISO calendar date.
	ErrInvalidInstalmentDate = errors.New("invalid instalment date")
)

// Account is a concrete instance of an AccountType with its own values and history.
//
// Invariants:
//   - AccountTypeName must resolve to an existing AccountType when the account is created.
//   - ID is assigned by the store and never changes afterwards.
//   - A freshly persisted account is inactive.
type Account struct {
	ID                   int64                        `json:"account_id,omitempty"`
	AccountTypeName      string                       `json:"account_type_name" validate:"required"`
	AccountType          *AccountType                 `json:"account_type,omitempty"`
	Active               bool                         `json:"active"`
	StartDate            civil.Date                   `json:"start_date"`
	Properties           map[string]decimal.Decimal   `json:"properties"`
	Dates                map[string]civil.Date        `json:"dates"`
	ValueDatedProperties map[string][]ValueDatedValue `json:"value_dated_properties"`
	Positions            map[string]decimal.Decimal   `json:"positions"`
	Transactions         []Transaction                `json:"transactions"`
	Instalments          map[string]decimal.Decimal   `json:"instalments"`
}

// Filter narrows an account listing on the indexed columns. Nil fields match everything.
type Filter struct {
	AccountTypeName *string
	Active          *bool
}

// IsZero reports whether the filter matches every account.
func (f Filter) IsZero() bool {
	return f.AccountTypeName == nil && f.Active == nil
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	accountTypeName      string
	accountType          *AccountType
	startDate            civil.Date
	properties           map[string]decimal.Decimal
	dates                map[string]civil.Date
	valueDatedProperties map[string][]ValueDatedValue
}

// New creates a Builder with empty collections.
func New() *Builder {
	return &Builder{
		properties:           map[string]decimal.Decimal{},
		dates:                map[string]civil.Date{},
		valueDatedProperties: map[string][]ValueDatedValue{},
	}
}

// WithAccountTypeName sets the name of the template. This is a mandatory field.
func (b *Builder) WithAccountTypeName(name string) *Builder {
	b.accountTypeName = name
	return b
}

// WithAccountType embeds the resolved template and aligns the type name with it.
func (b *Builder) WithAccountType(at *AccountType) *Builder {
	b.accountType = at
	if at != nil {
		b.accountTypeName = at.Name
	}
	return b
}

// WithStartDate sets the date the account starts from.
func (b *Builder) WithStartDate(d civil.Date) *Builder {
	b.startDate = d
	return b
}

// WithProperty sets a named decimal property.
func (b *Builder) WithProperty(name string, value decimal.Decimal) *Builder {
	b.properties[name] = value
	return b
}

// WithProperties copies every entry of props.
func (b *Builder) WithProperties(props map[string]decimal.Decimal) *Builder {
	for k, v := range props {
		b.properties[k] = v
	}
	return b
}

// WithDate sets a named calendar date.
func (b *Builder) WithDate(name string, d civil.Date) *Builder {
	b.dates[name] = d
	return b
}

// WithDates copies every entry of dates.
func (b *Builder) WithDates(dates map[string]civil.Date) *Builder {
	for k, v := range dates {
		b.dates[k] = v
	}
	return b
}

// WithValueDatedProperties copies every value-dated series of vdp.
func (b *Builder) WithValueDatedProperties(vdp map[string][]ValueDatedValue) *Builder {
	for k, v := range vdp {
		b.valueDatedProperties[k] = append([]ValueDatedValue(nil), v...)
	}
	return b
}

// Build validates the builder state and returns a fresh, inactive Account with
// no positions, transactions or instalments.
func (b *Builder) Build() (*Account, error) {
	if b.accountTypeName == "" {
		return nil, ErrAccountTypeRequired
	}
	return &Account{
		AccountTypeName:      b.accountTypeName,
		AccountType:          b.accountType,
		StartDate:            b.startDate,
		Properties:           b.properties,
		Dates:                b.dates,
		ValueDatedProperties: b.valueDatedProperties,
		Positions:            map[string]decimal.Decimal{},
		Transactions:         []Transaction{},
		Instalments:          map[string]decimal.Decimal{},
	}, nil
}

// Horizon returns the last date a valuation of this account has to cover.
// The end_date entry wins; otherwise the latest instalment date is used.
func (a *Account) Horizon() (civil.Date, error) {
	if end, ok := a.Dates[EndDateKey]; ok {
		return end, nil
	}
	var (
		latest civil.Date
		found  bool
	)
	for key := range a.Instalments {
		d, err := civil.ParseDate(key)
		if err != nil {
			return civil.Date{}, fmt.Errorf("%w %q: %w", ErrInvalidInstalmentDate, key, err)
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	if !found {
		return civil.Date{}, ErrNoHorizon
	}
	return latest, nil
}

// Normalize replaces nil collections with empty ones.
func (a *Account) Normalize() {
	if a.Properties == nil {
		a.Properties = map[string]decimal.Decimal{}
	}
	if a.Dates == nil {
		a.Dates = map[string]civil.Date{}
	}
	if a.ValueDatedProperties == nil {
		a.ValueDatedProperties = map[string][]ValueDatedValue{}
	}
	if a.Positions == nil {
		a.Positions = map[string]decimal.Decimal{}
	}
	if a.Transactions == nil {
		a.Transactions = []Transaction{}
	}
	if a.Instalments == nil {
		a.Instalments = map[string]decimal.Decimal{}
	}
	if a.AccountType != nil {
		a.AccountType.Normalize()
	}
}
