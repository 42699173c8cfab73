package account_test

import (
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	domainaccount "github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	at := domainaccount.NewAccountType("saving", "Saving Account")

	acc, err := domainaccount.New().
		WithAccountType(at).
		WithStartDate(date(2024, 1, 1)).
		WithProperty("rate", decimal.RequireFromString("0.05")).
		Build()
	require.NoError(err)

	assert.Equal(t, "saving", acc.AccountTypeName)
	assert.Same(t, at, acc.AccountType)
	assert.False(t, acc.Active)
	assert.Zero(t, acc.ID)
	assert.Empty(t, acc.Transactions)
	assert.Empty(t, acc.Positions)
	assert.Empty(t, acc.Instalments)
	assert.True(t, acc.Properties["rate"].Equal(decimal.RequireFromString("0.05")))
}

func TestNewAccountRequiresType(t *testing.T) {
	t.Parallel()
	_, err := domainaccount.New().Build()
	assert.ErrorIs(t, err, domainaccount.ErrAccountTypeRequired)
}

func TestHorizon(t *testing.T) {
	t.Parallel()

	t.Run("end date wins over instalments", func(t *testing.T) {
		acc := &domainaccount.Account{
			Dates: map[string]civil.Date{domainaccount.EndDateKey: date(2030, 6, 30)},
			Instalments: map[string]decimal.Decimal{
				"2031-01-01": decimal.NewFromInt(10),
			},
		}
		h, err := acc.Horizon()
		require.NoError(t, err)
		assert.Equal(t, date(2030, 6, 30), h)
	})

	t.Run("latest instalment date", func(t *testing.T) {
		acc := &domainaccount.Account{
			Instalments: map[string]decimal.Decimal{
				"2025-03-01": decimal.NewFromInt(10),
				"2026-12-01": decimal.NewFromInt(10),
				"2025-11-01": decimal.NewFromInt(10),
			},
		}
		h, err := acc.Horizon()
		require.NoError(t, err)
		assert.Equal(t, date(2026, 12, 1), h)
	})

	t.Run("no horizon", func(t *testing.T) {
		acc := &domainaccount.Account{}
		_, err := acc.Horizon()
		assert.ErrorIs(t, err, domainaccount.ErrNoHorizon)
	})

	t.Run("malformed instalment key", func(t *testing.T) {
		acc := &domainaccount.Account{
			Instalments: map[string]decimal.Decimal{"next month": decimal.NewFromInt(1)},
		}
		_, err := acc.Horizon()
		assert.ErrorIs(t, err, domainaccount.ErrInvalidInstalmentDate)
	})
}

func TestAccountTypeSerializesEmptyCollections(t *testing.T) {
	t.Parallel()
	at := domainaccount.NewAccountType("saving", "Saving Account")

	b, err := json.Marshal(at)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "saving",
		"label": "Saving Account",
		"transaction_types": [],
		"position_types": [],
		"date_types": [],
		"rate_types": {},
		"triggered_transactions": [],
		"schedule_types": [],
		"property_types": [],
		"scheduled_transactions": [],
		"instalment_type": null
	}`, string(b))
}

func TestAccountTypeKeepsUnknownConfiguration(t *testing.T) {
	t.Parallel()
	in := `{"name":"loan","label":"Loan","transaction_types":[{"name":"interest","maximum_precision":2,"custom":true}],
		"rate_types":{"interest":{"positions":["principal"]}},"instalment_type":{"solve_for":"payment"}}`

	var at domainaccount.AccountType
	require.NoError(t, json.Unmarshal([]byte(in), &at))
	at.Normalize()
	require.NotNil(t, at.InstalmentType)
	assert.NoError(t, at.Validate())

	out, err := json.Marshal(&at)
	require.NoError(t, err)

	var round domainaccount.AccountType
	require.NoError(t, json.Unmarshal(out, &round))
	assert.JSONEq(t, string(at.TransactionTypes[0]), string(round.TransactionTypes[0]))
	assert.JSONEq(t, string(*at.InstalmentType), string(*round.InstalmentType))
	assert.Empty(t, round.PositionTypes)
}

func TestAccountTypeValidate(t *testing.T) {
	t.Parallel()
	var at *domainaccount.AccountType
	assert.ErrorIs(t, at.Validate(), domainaccount.ErrAccountTypeNameRequired)
	assert.ErrorIs(t, (&domainaccount.AccountType{}).Validate(), domainaccount.ErrAccountTypeNameRequired)
}

func TestAccountJSONRoundTrip(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().
		WithAccountTypeName("saving").
		WithStartDate(date(2024, 2, 29)).
		WithDate(domainaccount.EndDateKey, date(2029, 2, 28)).
		WithProperty("limit", decimal.RequireFromString("1000.50")).
		WithValueDatedProperties(map[string][]domainaccount.ValueDatedValue{
			"rate": {{Date: date(2024, 3, 1), Value: decimal.RequireFromString("0.021")}},
		}).
		Build()
	require.NoError(t, err)
	acc.Transactions = append(acc.Transactions,
		domainaccount.NewTransaction(date(2024, 3, 1), "deposit", decimal.NewFromInt(250)))

	b, err := json.Marshal(acc)
	require.NoError(t, err)

	var got domainaccount.Account
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, acc.StartDate, got.StartDate)
	assert.Equal(t, acc.Dates, got.Dates)
	assert.True(t, got.Properties["limit"].Equal(acc.Properties["limit"]))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "deposit", got.Transactions[0].TransactionType)
	assert.True(t, got.Transactions[0].Amount.Equal(decimal.NewFromInt(250)))
	require.Len(t, got.ValueDatedProperties["rate"], 1)
	assert.True(t, got.ValueDatedProperties["rate"][0].Value.Equal(decimal.RequireFromString("0.021")))
}

func TestFilterIsZero(t *testing.T) {
	t.Parallel()
	active := true
	assert.True(t, domainaccount.Filter{}.IsZero())
	assert.False(t, domainaccount.Filter{Active: &active}.IsZero())
}
