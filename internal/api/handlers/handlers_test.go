package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/assistant"
	"github.com/vaulton/vaulton/internal/domain"
	"github.com/vaulton/vaulton/internal/jobs"
	"github.com/vaulton/vaulton/internal/logger"
	"github.com/vaulton/vaulton/internal/marketdata"
)

type fakeTransactions struct {
	txs []domain.TransactionRecord
}

func (f *fakeTransactions) ListAllTransactions(context.Context) ([]domain.TransactionRecord, error) {
	return f.txs, nil
}

type fakePrices map[string]decimal.Decimal

func (p fakePrices) CurrentPrice(_ context.Context, symbol, _ string) marketdata.Quote {
	if price, ok := p[symbol]; ok {
		return marketdata.Quote{Price: price, Source: marketdata.SourceLive}
	}
	return marketdata.Quote{}
}

type fakePublisher struct {
	published []*jobs.ArchiveAnswerJob
}

func (f *fakePublisher) PublishArchiveAnswer(_ context.Context, job *jobs.ArchiveAnswerJob) error {
	f.published = append(f.published, job)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testSnapshot() []domain.TransactionRecord {
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.TransactionRecord{
		{Type: domain.TypeExpense, Amount: decimal.NewFromInt(50), Category: "Groceries", Date: date},
		{Type: domain.TypeInvestment, Amount: decimal.NewFromInt(100), Category: "Crypto", Asset: "ETH", Quantity: decimal.NewFromInt(2), Date: date},
	}
}

func newTestAssistantHandler(publisher jobs.Publisher) *AssistantHandler {
	log := logger.NewWithWriter(io.Discard)
	engine := assistant.NewEngine(
		&fakeTransactions{txs: testSnapshot()},
		nil,
		fakePrices{"ETH": decimal.NewFromInt(60)},
		nil,
		log,
		func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
	)
	return NewAssistantHandler(engine, publisher, log, nil)
}

func TestAssistantHandler_Ask(t *testing.T) {
	publisher := &fakePublisher{}
	h := newTestAssistantHandler(publisher)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-assistant", strings.NewReader(`{"question":"How much did I spend on groceries?"}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var answer assistant.Answer
	if err := json.NewDecoder(rec.Body).Decode(&answer); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !answer.DataProvided || !strings.Contains(answer.Answer, "$50.00") {
		t.Errorf("answer = %+v", answer)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published %d archive jobs, want 1", len(publisher.published))
	}
	if publisher.published[0].Answer != answer.Answer {
		t.Error("archived answer differs from the response")
	}
}

func TestAssistantHandler_EmptyQuestion(t *testing.T) {
	h := newTestAssistantHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-assistant", strings.NewReader(`{"question":"  "}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAssistantHandler_InvalidBody(t *testing.T) {
	h := newTestAssistantHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-assistant", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPortfolioHandler_Get(t *testing.T) {
	h := NewPortfolioHandler(&fakeTransactions{txs: testSnapshot()}, fakePrices{"ETH": decimal.NewFromInt(60)}, logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var summary domain.PortfolioSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(summary.Holdings) != 1 || summary.Holdings[0].Asset != "ETH" {
		t.Errorf("holdings = %+v", summary.Holdings)
	}
	if !summary.Priced {
		t.Error("portfolio should be priced")
	}
}

func TestVoiceHandler_Parse(t *testing.T) {
	h := NewVoiceHandler(logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodPost, "/api/parse-voice-transaction", strings.NewReader(`{"text":"spent 50 dollars on groceries"}`))
	rec := httptest.NewRecorder()
	h.Parse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var result assistant.VoiceParseResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.NeedsClarification || result.Type != domain.TypeExpense {
		t.Errorf("result = %+v", result)
	}
}

func TestVoiceHandler_EmptyText(t *testing.T) {
	h := NewVoiceHandler(logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodPost, "/api/parse-voice-transaction", strings.NewReader(`{"text":""}`))
	rec := httptest.NewRecorder()
	h.Parse(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQuoteHandler_Get(t *testing.T) {
	h := NewQuoteHandler(func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) })

	req := httptest.NewRequest(http.MethodGet, "/api/quote-of-day", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var quote struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
		Date   string `json:"date"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&quote); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if quote.Quote == "" || quote.Date != "2025-03-07" {
		t.Errorf("quote = %+v", quote)
	}
}

type fakeJobStore struct {
	jobs       []*jobs.ArchiveAnswerJob
	lastFilter jobs.JobFilter
}

func (f *fakeJobStore) SaveJob(_ context.Context, job *jobs.ArchiveAnswerJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobStore) GetJob(_ context.Context, jobID string) (*jobs.ArchiveAnswerJob, error) {
	for _, j := range f.jobs {
		if j.JobID == jobID {
			return j, nil
		}
	}
	return nil, errors.New("job not found: " + jobID)
}

func (f *fakeJobStore) ListJobs(_ context.Context, filter jobs.JobFilter) ([]*jobs.ArchiveAnswerJob, error) {
	f.lastFilter = filter
	var out []*jobs.ArchiveAnswerJob
	for _, j := range f.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobStore) UpdateJobStatus(context.Context, string, jobs.JobStatus, string) error {
	return nil
}

func TestJobsHandler_ListJobs(t *testing.T) {
	store := &fakeJobStore{jobs: []*jobs.ArchiveAnswerJob{
		{JobID: "job-1", Question: "How much did I spend?", Status: jobs.JobStatusCompleted},
		{JobID: "job-2", Question: "What is my ROI?", Status: jobs.JobStatusFailed},
	}}
	h := NewJobsHandler(store, logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?status=failed&limit=5", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		Jobs  []*jobs.ArchiveAnswerJob `json:"jobs"`
		Count int                      `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Jobs) != 1 || resp.Jobs[0].JobID != "job-2" {
		t.Errorf("response = %+v", resp)
	}
	if store.lastFilter.Status != jobs.JobStatusFailed || store.lastFilter.Limit != 5 {
		t.Errorf("filter = %+v", store.lastFilter)
	}
}

func TestJobsHandler_GetJob(t *testing.T) {
	store := &fakeJobStore{jobs: []*jobs.ArchiveAnswerJob{
		{JobID: "job-1", Question: "How much did I spend?", Status: jobs.JobStatusCompleted},
	}}
	h := NewJobsHandler(store, logger.NewWithWriter(io.Discard))

	rec := httptest.NewRecorder()
	h.GetJob(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil), "job-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var job jobs.ArchiveAnswerJob
	if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if job.JobID != "job-1" || job.Status != jobs.JobStatusCompleted {
		t.Errorf("job = %+v", job)
	}
}

func TestJobsHandler_GetJobNotFound(t *testing.T) {
	h := NewJobsHandler(&fakeJobStore{}, logger.NewWithWriter(io.Discard))

	rec := httptest.NewRecorder()
	h.GetJob(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil), "missing")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
