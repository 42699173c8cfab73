package account

import (
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// Transaction is one posting produced on an account by the valuation engine.
type Transaction struct {
	Date            civil.Date      `json:"date"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	System          bool            `json:"system,omitempty"`
}

// ValueDatedValue is a property value effective from Date onwards.
type ValueDatedValue struct {
	Date  civil.Date      `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// NewTransaction creates a Transaction from raw data (used for document hydration or test fixtures).
func NewTransaction(date civil.Date, transactionType string, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:            date,
		TransactionType: transactionType,
		Amount:          amount,
	}
}
