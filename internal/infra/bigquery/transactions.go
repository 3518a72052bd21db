package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	UserID string `bigquery:"user_id"` // NULLABLE

	Type     string   `bigquery:"type"`   // REQUIRED: expense | income | investment
	Amount   *big.Rat `bigquery:"amount"` // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"`

	Category    bigquery.NullString `bigquery:"category"`    // NULLABLE
	Description bigquery.NullString `bigquery:"description"` // NULLABLE

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED in schema

	// Investment-only columns, NULL for expense/income rows.
	Asset         bigquery.NullString `bigquery:"asset"`
	Quantity      *big.Rat            `bigquery:"quantity"`       // NULLABLE NUMERIC
	PurchasePrice *big.Rat            `bigquery:"purchase_price"` // NULLABLE NUMERIC

	CreatedTS time.Time              `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
	UpdatedTS bigquery.NullTimestamp `bigquery:"updated_ts"` // NULLABLE
}
