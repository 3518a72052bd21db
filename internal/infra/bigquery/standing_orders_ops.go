package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// InsertStandingOrders inserts a batch of StandingOrderRow into
// vaulton.standing_orders.
func InsertStandingOrders(ctx context.Context, projectID string, rows []*StandingOrderRow) error {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("InsertStandingOrders: bigquery client: %w", err)
	}
	defer client.Close()

	return InsertStandingOrdersWithClient(ctx, client, projectID, rows)
}

// InsertStandingOrdersWithClient inserts a batch of StandingOrderRow using
// the provided BigQuery client.
func InsertStandingOrdersWithClient(ctx context.Context, client *bigquery.Client, projectID string, rows []*StandingOrderRow) error {
	if len(rows) == 0 {
		return nil
	}

	table := client.DatasetInProject(projectID, datasetID).Table(standingOrdersTable)
	inserter := table.Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertStandingOrders: inserting rows: %w", err)
	}

	return nil
}

// QueryActiveStandingOrders fetches the active recurring-transaction
// templates.
func QueryActiveStandingOrders(ctx context.Context, projectID string) ([]*StandingOrderRow, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("QueryActiveStandingOrders: bigquery client: %w", err)
	}
	defer client.Close()

	return QueryActiveStandingOrdersWithClient(ctx, client)
}

// QueryActiveStandingOrdersWithClient fetches the active standing orders
// using the provided BigQuery client.
func QueryActiveStandingOrdersWithClient(ctx context.Context, client *bigquery.Client) ([]*StandingOrderRow, error) {
	q := client.Query(`
		SELECT
			so.order_id,
			so.user_id,
			so.description,
			so.amount,
			so.frequency,
			so.category,
			so.type,
			so.active,
			so.created_ts,
			so.updated_ts
		FROM vaulton.standing_orders so
		WHERE so.active = TRUE
		ORDER BY so.created_ts
	`)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryActiveStandingOrders: query read: %w", err)
	}

	var rows []*StandingOrderRow
	for {
		var r StandingOrderRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryActiveStandingOrders: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
