package marketdata

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/logger"
)

// stubFetcher is a scriptable Fetcher for tests.
type stubFetcher struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	err    error
	calls  atomic.Int64
	block  chan struct{} // when non-nil, Fetch waits until closed
}

func (f *stubFetcher) Fetch(ctx context.Context, ticker string) (decimal.Decimal, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return decimal.Decimal{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	p, ok := f.prices[ticker]
	if !ok {
		return decimal.Decimal{}, errors.New("unknown ticker")
	}
	return p, nil
}

func newTestService(f Fetcher) *Service {
	return NewService(f, logger.NewWithWriter(io.Discard))
}

func TestCurrentPrice_LiveThenCached(t *testing.T) {
	f := &stubFetcher{prices: map[string]decimal.Decimal{
		"ETH-USD": decimal.NewFromInt(60),
	}}
	svc := newTestService(f)

	q := svc.CurrentPrice(context.Background(), "ETH", "Crypto")
	if q.Source != SourceLive {
		t.Fatalf("first lookup source = %v, want live", q.Source)
	}
	if !q.Price.Equal(decimal.NewFromInt(60)) {
		t.Errorf("price = %s, want 60", q.Price)
	}

	q = svc.CurrentPrice(context.Background(), "ETH", "Crypto")
	if q.Source != SourceCached {
		t.Errorf("second lookup source = %v, want cached", q.Source)
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times, want 1", got)
	}
}

func TestCurrentPrice_CryptoTickerMapping(t *testing.T) {
	f := &stubFetcher{prices: map[string]decimal.Decimal{
		"BTC-USD": decimal.NewFromInt(43000),
		"AAPL":    decimal.NewFromInt(190),
	}}
	svc := newTestService(f)

	if q := svc.CurrentPrice(context.Background(), "BTC", "Crypto"); q.Source != SourceLive {
		t.Errorf("BTC source = %v, want live (crypto symbols map to -USD pairs)", q.Source)
	}
	if q := svc.CurrentPrice(context.Background(), "AAPL", "Stocks"); q.Source != SourceLive {
		t.Errorf("AAPL source = %v, want live (stock tickers pass through)", q.Source)
	}
}

func TestCurrentPrice_FallbackOnFetchError(t *testing.T) {
	f := &stubFetcher{err: errors.New("provider down")}
	svc := newTestService(f)

	q := svc.CurrentPrice(context.Background(), "ETH", "Crypto")
	if q.Source != SourceFallback {
		t.Fatalf("source = %v, want fallback", q.Source)
	}
	if !q.Price.Equal(decimal.NewFromFloat(2280.50)) {
		t.Errorf("price = %s, want fallback 2280.50", q.Price)
	}
}

func TestCurrentPrice_UnknownSymbolYieldsNone(t *testing.T) {
	f := &stubFetcher{err: errors.New("provider down")}
	svc := newTestService(f)

	q := svc.CurrentPrice(context.Background(), "OBSCURECOIN", "Crypto")
	if q.Source != SourceNone {
		t.Fatalf("source = %v, want none", q.Source)
	}
	if !q.Price.IsZero() {
		t.Errorf("price = %s, want zero", q.Price)
	}
}

func TestCurrentPrice_SingleFlightCollapsesConcurrentMisses(t *testing.T) {
	block := make(chan struct{})
	f := &stubFetcher{
		prices: map[string]decimal.Decimal{"ETH-USD": decimal.NewFromInt(60)},
		block:  block,
	}
	svc := newTestService(f)

	const n = 8
	var wg sync.WaitGroup
	results := make([]Quote, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.CurrentPrice(context.Background(), "ETH", "Crypto")
		}(i)
	}

	close(block)
	wg.Wait()

	if got := f.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times for concurrent misses, want 1", got)
	}
	for i, q := range results {
		if q.Source == SourceNone || !q.Price.Equal(decimal.NewFromInt(60)) {
			t.Errorf("result %d = %+v, want priced quote of 60", i, q)
		}
	}
}

func TestCurrentPrice_CallerCancellationFallsBack(t *testing.T) {
	block := make(chan struct{})
	f := &stubFetcher{
		prices: map[string]decimal.Decimal{"ETH-USD": decimal.NewFromInt(60)},
		block:  block,
	}
	svc := newTestService(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := svc.CurrentPrice(ctx, "ETH", "Crypto")
	if q.Source != SourceFallback {
		t.Errorf("source after cancellation = %v, want fallback", q.Source)
	}
	close(block)
}

func TestCurrentPrice_EmptySymbol(t *testing.T) {
	svc := newTestService(&stubFetcher{})
	if q := svc.CurrentPrice(context.Background(), "", "Crypto"); q.Source != SourceNone {
		t.Errorf("source = %v, want none for empty symbol", q.Source)
	}
}
