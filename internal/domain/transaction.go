package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money out, money in, or an
// asset purchase.
type TransactionType string

const (
	TypeExpense    TransactionType = "expense"
	TypeIncome     TransactionType = "income"
	TypeInvestment TransactionType = "investment"
)

// KnownType reports whether t is one of the supported transaction types.
func KnownType(t TransactionType) bool {
	switch t {
	case TypeExpense, TypeIncome, TypeInvestment:
		return true
	}
	return false
}

// TransactionRecord is one normalized transaction from the store. Amounts are
// in the user's primary currency. The record is immutable for the duration of
// a query; the analytics engine never writes it back.
type TransactionRecord struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal // always positive; Type carries the direction
	Category    string
	Description string
	Date        time.Time // calendar date, midnight UTC; time of day is not used for filtering

	// Investment-only fields. Asset is the ticker symbol ("ETH", "AAPL");
	// Quantity and PurchasePrice may be zero when the source row lacks them.
	Asset         string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
}

// Validate checks the invariants the engine relies on. It is called at the
// snapshot-fetch boundary so resolution and aggregation code can assume
// well-formed records.
func (t TransactionRecord) Validate() error {
	if !KnownType(t.Type) {
		return fmt.Errorf("transaction %s: unknown type %q", t.ID, t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction %s: negative amount %s", t.ID, t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: missing date", t.ID)
	}
	return nil
}

// StandingOrder is a recurring transaction template (e.g. a monthly
// subscription). The engine consumes standing orders only as context for the
// LLM digest; materializing them into transactions is the scheduler's job.
type StandingOrder struct {
	Description string
	Amount      decimal.Decimal
	Frequency   string // daily, weekly, monthly, yearly
	Category    string
	Type        TransactionType
}
