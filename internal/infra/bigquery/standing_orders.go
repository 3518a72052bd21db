package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
)

type StandingOrderRow struct {
	OrderID string `bigquery:"order_id"` // REQUIRED

	UserID string `bigquery:"user_id"` // NULLABLE

	Description string   `bigquery:"description"` // REQUIRED
	Amount      *big.Rat `bigquery:"amount"`      // REQUIRED NUMERIC
	Frequency   string   `bigquery:"frequency"`   // REQUIRED: weekly | monthly | yearly

	Category bigquery.NullString `bigquery:"category"` // NULLABLE
	Type     string              `bigquery:"type"`     // REQUIRED: expense | income | investment

	Active bool `bigquery:"active"`

	CreatedTS time.Time              `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
	UpdatedTS bigquery.NullTimestamp `bigquery:"updated_ts"` // NULLABLE
}
