package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooFetcher retrieves current prices from the Yahoo Finance chart
// endpoint. No API key is required.
type YahooFetcher struct {
	client *http.Client
}

// NewYahooFetcher creates a fetcher with the given HTTP client; pass nil to
// use http.DefaultClient. Per-call deadlines come from the context.
func NewYahooFetcher(client *http.Client) *YahooFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &YahooFetcher{client: client}
}

// chartResponse models the slice of the Yahoo payload we actually read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch implements Fetcher.
func (f *YahooFetcher) Fetch(ctx context.Context, ticker string) (decimal.Decimal, error) {
	endpoint := yahooChartURL + url.PathEscape(ticker) + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("Fetch: building request: %w", err)
	}
	req.Header.Set("User-Agent", "vaulton/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("Fetch: requesting %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("Fetch: %s returned status %d", ticker, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("Fetch: decoding response for %s: %w", ticker, err)
	}

	if payload.Chart.Error != nil {
		return decimal.Decimal{}, fmt.Errorf("Fetch: provider error for %s: %s", ticker, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return decimal.Decimal{}, fmt.Errorf("Fetch: empty result for %s", ticker)
	}

	meta := payload.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	if price == nil {
		price = meta.PreviousClose
	}
	if price == nil {
		return decimal.Decimal{}, fmt.Errorf("Fetch: no price in response for %s", ticker)
	}

	return decimal.NewFromFloat(*price), nil
}
