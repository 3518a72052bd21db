package domain

import "github.com/shopspring/decimal"

// AssetHolding is the aggregated position in one asset, derived fresh per
// query from the investment transactions in scope. Priced is false when no
// current market price could be obtained; in that case CurrentPrice,
// CurrentValue, GainLoss and ROIPercent are zero and must not be displayed.
type AssetHolding struct {
	Asset    string `json:"asset"`
	Category string `json:"category"`

	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	AveragePrice  decimal.Decimal `json:"average_price"`

	CurrentPrice decimal.Decimal `json:"current_price"`
	CurrentValue decimal.Decimal `json:"current_value"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	ROIPercent   decimal.Decimal `json:"roi_percentage"`
	Priced       bool            `json:"priced"`
}

// PortfolioSummary is the portfolio-level rollup across holdings. Priced is
// true when at least one holding carries a current market price; the
// CurrentValue/GainLoss/ROI totals cover only the priced holdings.
type PortfolioSummary struct {
	Holdings []AssetHolding `json:"holdings"`

	TotalInvested   decimal.Decimal `json:"total_invested"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	TotalGainLoss   decimal.Decimal `json:"total_gain_loss"`
	TotalROIPercent decimal.Decimal `json:"total_roi_percentage"`
	Priced          bool            `json:"priced"`
}
