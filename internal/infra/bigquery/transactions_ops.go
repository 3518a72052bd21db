package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

const (
	datasetID           = "vaulton"
	transactionsTable   = "transactions"
	standingOrdersTable = "standing_orders"
)

// InsertTransactions inserts a batch of TransactionRow into vaulton.transactions.
func InsertTransactions(ctx context.Context, projectID string, rows []*TransactionRow) error {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("InsertTransactions: bigquery client: %w", err)
	}
	defer client.Close()

	return InsertTransactionsWithClient(ctx, client, projectID, rows)
}

// InsertTransactionsWithClient inserts a batch of TransactionRow into
// vaulton.transactions using the provided BigQuery client.
func InsertTransactionsWithClient(ctx context.Context, client *bigquery.Client, projectID string, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	table := client.DatasetInProject(projectID, datasetID).Table(transactionsTable)
	inserter := table.Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting rows: %w", err)
	}

	return nil
}

// QueryAllTransactions fetches the full transaction snapshot. No filtering is
// pushed down; the analytics engine owns all filtering logic.
func QueryAllTransactions(ctx context.Context, projectID string) ([]*TransactionRow, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("QueryAllTransactions: bigquery client: %w", err)
	}
	defer client.Close()

	return QueryAllTransactionsWithClient(ctx, client)
}

// QueryAllTransactionsWithClient fetches the full transaction snapshot using
// the provided BigQuery client, in stable date order.
func QueryAllTransactionsWithClient(ctx context.Context, client *bigquery.Client) ([]*TransactionRow, error) {
	q := client.Query(`
		SELECT
			t.transaction_id,
			t.user_id,
			t.type,
			t.amount,
			t.currency,
			t.category,
			t.description,
			t.transaction_date,
			t.asset,
			t.quantity,
			t.purchase_price,
			t.created_ts,
			t.updated_ts
		FROM vaulton.transactions t
		ORDER BY t.transaction_date, t.created_ts
	`)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryAllTransactions: query read: %w", err)
	}

	var rows []*TransactionRow
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryAllTransactions: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
