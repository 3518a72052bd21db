package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaulton/vaulton/internal/api/middleware"
	"github.com/vaulton/vaulton/internal/assistant"
	"github.com/vaulton/vaulton/internal/jobs"
	"github.com/vaulton/vaulton/internal/quotes"
)

// AssistantHandler handles the natural-language question endpoint.
type AssistantHandler struct {
	engine    *assistant.Engine
	publisher jobs.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewAssistantHandler creates a new assistant handler. The publisher is
// optional; without it answers are simply not archived.
func NewAssistantHandler(engine *assistant.Engine, publisher jobs.Publisher, log zerolog.Logger, now func() time.Time) *AssistantHandler {
	if now == nil {
		now = time.Now
	}
	return &AssistantHandler{
		engine:    engine,
		publisher: publisher,
		log:       log,
		now:       now,
	}
}

// Ask handles POST /api/ai-assistant
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.engine.AnswerQuestion(ctx, req.Question)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			middleware.WriteError(w, http.StatusBadRequest, "Question is required")
			return
		}
		h.log.Error().Err(err).Msg("Failed to answer question")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	if h.publisher != nil {
		job := &jobs.ArchiveAnswerJob{
			Question:     req.Question,
			Answer:       answer.Answer,
			DataProvided: answer.DataProvided,
			AskedAt:      h.now(),
		}
		if err := h.publisher.PublishArchiveAnswer(ctx, job); err != nil {
			// Archival is best-effort; the answer still goes out.
			h.log.Warn().Err(err).Msg("Failed to enqueue answer archival")
		}
	}

	middleware.WriteJSON(w, http.StatusOK, answer)
}

// PortfolioHandler handles the portfolio valuation endpoint.
type PortfolioHandler struct {
	transactions assistant.TransactionSource
	prices       assistant.PriceSource
	log          zerolog.Logger
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(transactions assistant.TransactionSource, prices assistant.PriceSource, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		transactions: transactions,
		prices:       prices,
		log:          log,
	}
}

// Get handles GET /api/portfolio
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txs, err := h.transactions.ListAllTransactions(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}

	summary := assistant.BuildHoldings(ctx, txs, h.prices)
	middleware.WriteJSON(w, http.StatusOK, summary)
}

// VoiceHandler handles the voice transaction parsing endpoint.
type VoiceHandler struct {
	log zerolog.Logger
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{log: log}
}

// Parse handles POST /api/parse-voice-transaction
func (h *VoiceHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Text is required")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, assistant.ParseVoiceTransaction(req.Text))
}

// JobsHandler exposes the archival queue's job status for inspection.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}

// QuoteHandler handles the daily quote endpoint.
type QuoteHandler struct {
	now func() time.Time
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(now func() time.Time) *QuoteHandler {
	if now == nil {
		now = time.Now
	}
	return &QuoteHandler{now: now}
}

// Get handles GET /api/quote-of-day
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, quotes.OfDay(h.now()))
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
