package marketdata

import "github.com/shopspring/decimal"

// fallbackPrices is the static, hand-maintained price table used when the
// live provider is unreachable. Read-only after init. Symbols outside this
// table get no price at all rather than an invented one.
var fallbackPrices = map[string]decimal.Decimal{
	"AAPL":  decimal.NewFromFloat(185.50),
	"GOOGL": decimal.NewFromFloat(142.30),
	"MSFT":  decimal.NewFromFloat(378.90),
	"TSLA":  decimal.NewFromFloat(242.80),
	"AMZN":  decimal.NewFromFloat(155.20),
	"NVDA":  decimal.NewFromFloat(495.60),
	"META":  decimal.NewFromFloat(352.40),
	"NFLX":  decimal.NewFromFloat(485.30),
	"BTC":   decimal.NewFromFloat(43250.00),
	"ETH":   decimal.NewFromFloat(2280.50),
	"SOL":   decimal.NewFromFloat(98.75),
	"BNB":   decimal.NewFromFloat(315.20),
	"ADA":   decimal.NewFromFloat(0.52),
	"DOT":   decimal.NewFromFloat(6.85),
	"MATIC": decimal.NewFromFloat(0.89),
	"AVAX":  decimal.NewFromFloat(36.40),
}
