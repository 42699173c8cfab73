package account

import (
	"encoding/json"
	"errors"
)

// ErrAccountTypeNameRequired is returned when an account type has no name.
var ErrAccountTypeNameRequired = errors.New("account type name is required")

// AccountType is the reusable template an Account is created from.
//
// Everything except Name and Label is configuration consumed by the valuation
// engine. This package never interprets it: the parts are carried as raw JSON
// so fields the engine adds later survive a store round trip untouched.
type AccountType struct {
	Name                  string                     `json:"name" validate:"required"`
	Label                 string                     `json:"label"`
	TransactionTypes      []json.RawMessage          `json:"transaction_types"`
	PositionTypes         []json.RawMessage          `json:"position_types"`
	DateTypes             []json.RawMessage          `json:"date_types"`
	RateTypes             map[string]json.RawMessage `json:"rate_types"`
	TriggeredTransactions []json.RawMessage          `json:"triggered_transactions"`
	ScheduleTypes         []json.RawMessage          `json:"schedule_types"`
	PropertyTypes         []json.RawMessage          `json:"property_types"`
	ScheduledTransactions []json.RawMessage          `json:"scheduled_transactions"`
	InstalmentType        *json.RawMessage           `json:"instalment_type"`
}

// NewAccountType returns an empty template with every collection initialised.
func NewAccountType(name, label string) *AccountType {
	at := &AccountType{Name: name, Label: label}
	at.Normalize()
	return at
}

// Normalize replaces nil collections with empty ones so that an account type
// always serializes with [] and {} rather than null.
func (at *AccountType) Normalize() {
	if at.TransactionTypes == nil {
		at.TransactionTypes = []json.RawMessage{}
	}
	if at.PositionTypes == nil {
		at.PositionTypes = []json.RawMessage{}
	}
	if at.DateTypes == nil {
		at.DateTypes = []json.RawMessage{}
	}
	if at.RateTypes == nil {
		at.RateTypes = map[string]json.RawMessage{}
	}
	if at.TriggeredTransactions == nil {
		at.TriggeredTransactions = []json.RawMessage{}
	}
	if at.ScheduleTypes == nil {
		at.ScheduleTypes = []json.RawMessage{}
	}
	if at.PropertyTypes == nil {
		at.PropertyTypes = []json.RawMessage{}
	}
	if at.ScheduledTransactions == nil {
		at.ScheduledTransactions = []json.RawMessage{}
	}
}

// Validate checks the invariants the persistence layer relies on.
func (at *AccountType) Validate() error {
	if at == nil || at.Name == "" {
		return ErrAccountTypeNameRequired
	}
	return nil
}
