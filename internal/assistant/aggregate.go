package assistant

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/domain"
	"github.com/vaulton/vaulton/internal/marketdata"
)

// PriceSource supplies a current market price per asset. marketdata.Service
// implements it; tests substitute a fixture.
type PriceSource interface {
	CurrentPrice(ctx context.Context, symbol, category string) marketdata.Quote
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// SumAmounts totals the amounts of the given transactions. Every figure the
// composer renders on the deterministic path comes from this sum or from
// BreakdownByCategory over the same filtered set.
func SumAmounts(txs []domain.TransactionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}

// BreakdownByCategory sums amounts per distinct category, sorted by total
// descending with name as the tie-break so equal inputs always render
// identically.
func BreakdownByCategory(txs []domain.TransactionRecord) []CategoryTotal {
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, t := range txs {
		cat := t.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, ok := totals[cat]; !ok {
			order = append(order, cat)
		}
		totals[cat] = totals[cat].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BuildHoldings groups investment transactions by asset (falling back to the
// category when the asset symbol is absent) and values each group at the
// current market price. Groups without an obtainable price keep their
// invested figures and are marked unpriced; nothing is ever interpolated.
func BuildHoldings(ctx context.Context, txs []domain.TransactionRecord, prices PriceSource) domain.PortfolioSummary {
	type group struct {
		asset    string
		category string
		quantity decimal.Decimal
		invested decimal.Decimal
	}

	groups := map[string]*group{}
	var order []string
	for _, t := range txs {
		if t.Type != domain.TypeInvestment {
			continue
		}
		key := t.Asset
		if key == "" {
			key = t.Category
		}
		if key == "" {
			key = "Unspecified"
		}
		g, ok := groups[key]
		if !ok {
			g = &group{asset: key, category: t.Category}
			groups[key] = g
			order = append(order, key)
		}
		g.quantity = g.quantity.Add(t.Quantity)
		g.invested = g.invested.Add(t.Amount)
	}

	summary := domain.PortfolioSummary{}
	pricedValue := decimal.Zero
	pricedInvested := decimal.Zero

	for _, key := range order {
		g := groups[key]

		h := domain.AssetHolding{
			Asset:         g.asset,
			Category:      g.category,
			TotalQuantity: g.quantity,
			TotalInvested: g.invested,
		}
		if g.quantity.IsPositive() {
			h.AveragePrice = g.invested.Div(g.quantity)

			quote := prices.CurrentPrice(ctx, g.asset, g.category)
			if quote.Source != marketdata.SourceNone {
				h.Priced = true
				h.CurrentPrice = quote.Price
				h.CurrentValue = g.quantity.Mul(quote.Price)
				h.GainLoss = h.CurrentValue.Sub(g.invested)
				if g.invested.IsPositive() {
					h.ROIPercent = h.GainLoss.Div(g.invested).Mul(oneHundred)
				}
			}
		}

		if h.Priced {
			summary.Priced = true
			pricedValue = pricedValue.Add(h.CurrentValue)
			pricedInvested = pricedInvested.Add(h.TotalInvested)
		}
		summary.TotalInvested = summary.TotalInvested.Add(h.TotalInvested)
		summary.Holdings = append(summary.Holdings, h)
	}

	// Portfolio-level ROI covers only the holdings that carry a price;
	// mixing unpriced positions in would fabricate a gain figure.
	if summary.Priced {
		summary.CurrentValue = pricedValue
		summary.TotalGainLoss = pricedValue.Sub(pricedInvested)
		if pricedInvested.IsPositive() {
			summary.TotalROIPercent = summary.TotalGainLoss.Div(pricedInvested).Mul(oneHundred)
		}
	}

	sort.SliceStable(summary.Holdings, func(i, j int) bool {
		a, b := summary.Holdings[i], summary.Holdings[j]
		if !a.TotalInvested.Equal(b.TotalInvested) {
			return a.TotalInvested.GreaterThan(b.TotalInvested)
		}
		return a.Asset < b.Asset
	})

	return summary
}
