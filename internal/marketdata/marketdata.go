// Package marketdata supplies current market prices for portfolio valuation.
// Lookups go through a read-through in-memory cache; concurrent misses for
// the same symbol are collapsed into a single upstream call, and a static
// fallback table covers upstream failures. A lookup never returns an error:
// the Quote's Source tells the caller how trustworthy the price is.
package marketdata

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// QuoteSource identifies where a price came from.
type QuoteSource int

const (
	// SourceNone means no price could be obtained at all; the Price field
	// is zero and must not be used.
	SourceNone QuoteSource = iota
	// SourceLive is a fresh price from the market-data provider.
	SourceLive
	// SourceCached is a price served from the in-process cache.
	SourceCached
	// SourceFallback is a static price used because the provider failed.
	SourceFallback
)

func (s QuoteSource) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCached:
		return "cached"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Quote is a priced lookup result. Callers branch on Source rather than on a
// swallowed error, so "we used a fallback" stays visible and testable.
type Quote struct {
	Price  decimal.Decimal
	Source QuoteSource
}

// Fetcher retrieves a live price for a provider ticker. Implementations must
// honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (decimal.Decimal, error)
}

const fetchTimeout = 10 * time.Second

// Service is the read-through price lookup used by the analytics engine.
type Service struct {
	fetcher Fetcher
	log     zerolog.Logger

	mu    sync.RWMutex
	cache map[string]decimal.Decimal

	flight singleflight.Group
}

// NewService creates a price lookup backed by the given fetcher.
func NewService(fetcher Fetcher, log zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   map[string]decimal.Decimal{},
		log:     log,
	}
}

// CurrentPrice returns the current price for an asset symbol. The category
// disambiguates provider tickers (crypto symbols map to their -USD pair).
// Unknown symbols yield a Quote with SourceNone; this method never fails.
func (s *Service) CurrentPrice(ctx context.Context, symbol, category string) Quote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}
	}

	s.mu.RLock()
	price, ok := s.cache[symbol]
	s.mu.RUnlock()
	if ok {
		return Quote{Price: price, Source: SourceCached}
	}

	// Collapse concurrent cache misses for the same symbol into one
	// upstream call; every waiter receives the same result.
	ch := s.flight.DoChan(symbol, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		p, err := s.fetcher.Fetch(fetchCtx, providerTicker(symbol, category))
		if err != nil {
			return decimal.Decimal{}, err
		}

		// Idempotent write: the same symbol always maps to the same
		// fetched price, so a racing last-write-wins is safe.
		s.mu.Lock()
		s.cache[symbol] = p
		s.mu.Unlock()
		return p, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			s.log.Warn().Err(res.Err).Str("symbol", symbol).Msg("Price fetch failed, trying fallback table")
			return fallbackQuote(symbol)
		}
		return Quote{Price: res.Val.(decimal.Decimal), Source: SourceLive}
	case <-ctx.Done():
		// The caller gave up; the in-flight fetch keeps running on its
		// own context and may still populate the cache for others.
		return fallbackQuote(symbol)
	}
}

// providerTicker maps an asset symbol to the market-data provider's ticker.
// Crypto assets trade as USD pairs.
func providerTicker(symbol, category string) string {
	if strings.EqualFold(category, "Crypto") {
		return symbol + "-USD"
	}
	return symbol
}

func fallbackQuote(symbol string) Quote {
	if price, ok := fallbackPrices[symbol]; ok {
		return Quote{Price: price, Source: SourceFallback}
	}
	return Quote{}
}
