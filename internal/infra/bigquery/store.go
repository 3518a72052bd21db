package bigquery

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/domain"
)

// numericScale matches BigQuery's NUMERIC scale when converting to decimals.
const numericScale = 9

// Store adapts the vaulton dataset to the analytics engine's source
// interfaces. Rows are validated at the fetch boundary; invalid rows are
// logged and dropped rather than poisoning a whole snapshot.
type Store struct {
	client *bigquery.Client
	log    zerolog.Logger
}

// NewStore wraps an existing BigQuery client.
func NewStore(client *bigquery.Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

// ListAllTransactions fetches and validates the full transaction snapshot.
func (s *Store) ListAllTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := QueryAllTransactionsWithClient(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("ListAllTransactions: %w", err)
	}

	out := make([]domain.TransactionRecord, 0, len(rows))
	for _, r := range rows {
		rec := toTransactionRecord(r)
		if err := rec.Validate(); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", r.TransactionID).Msg("Dropping invalid transaction row")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListActiveStandingOrders fetches the active standing orders.
func (s *Store) ListActiveStandingOrders(ctx context.Context) ([]domain.StandingOrder, error) {
	rows, err := QueryActiveStandingOrdersWithClient(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("ListActiveStandingOrders: %w", err)
	}

	out := make([]domain.StandingOrder, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StandingOrder{
			Description: r.Description,
			Amount:      ratToDecimal(r.Amount),
			Frequency:   r.Frequency,
			Category:    r.Category.StringVal,
			Type:        domain.TransactionType(r.Type),
		})
	}
	return out, nil
}

func toTransactionRecord(r *TransactionRow) domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:            r.TransactionID,
		Type:          domain.TransactionType(r.Type),
		Amount:        ratToDecimal(r.Amount),
		Category:      r.Category.StringVal,
		Description:   r.Description.StringVal,
		Date:          r.TransactionDate.In(time.UTC),
		Asset:         r.Asset.StringVal,
		Quantity:      ratToDecimal(r.Quantity),
		PurchasePrice: ratToDecimal(r.PurchasePrice),
	}
}

// ToTransactionRow converts a domain record for insertion.
func ToTransactionRow(rec domain.TransactionRecord) *TransactionRow {
	row := &TransactionRow{
		TransactionID:   rec.ID,
		Type:            string(rec.Type),
		Amount:          rec.Amount.Rat(),
		TransactionDate: civil.DateOf(rec.Date),
	}
	if rec.Category != "" {
		row.Category = bigquery.NullString{StringVal: rec.Category, Valid: true}
	}
	if rec.Description != "" {
		row.Description = bigquery.NullString{StringVal: rec.Description, Valid: true}
	}
	if rec.Asset != "" {
		row.Asset = bigquery.NullString{StringVal: rec.Asset, Valid: true}
	}
	if !rec.Quantity.IsZero() {
		row.Quantity = rec.Quantity.Rat()
	}
	if !rec.PurchasePrice.IsZero() {
		row.PurchasePrice = rec.PurchasePrice.Rat()
	}
	return row
}

func ratToDecimal(r *big.Rat) decimal.Decimal {
	if r == nil {
		return decimal.Decimal{}
	}
	return decimal.NewFromBigRat(r, numericScale)
}
