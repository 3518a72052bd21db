package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/joho/godotenv"

	"github.com/vaulton/vaulton/internal/api/handlers"
	"github.com/vaulton/vaulton/internal/api/middleware"
	"github.com/vaulton/vaulton/internal/archive"
	"github.com/vaulton/vaulton/internal/assistant"
	infraBQ "github.com/vaulton/vaulton/internal/infra/bigquery"
	"github.com/vaulton/vaulton/internal/jobs/inmemory"
	"github.com/vaulton/vaulton/internal/llm"
	"github.com/vaulton/vaulton/internal/logger"
	"github.com/vaulton/vaulton/internal/marketdata"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		port    = flag.String("port", "8080", "HTTP server port")
		project = flag.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project holding the vaulton dataset (or set BIGQUERY_PROJECT_ID)")
		bucket  = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for answer archival (or set GCS_BUCKET)")
		model   = flag.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for the assistant delegate (or set GEMINI_MODEL)")
	)
	flag.Parse()

	log := logger.New()

	if *project == "" {
		log.Fatal().Msg("BigQuery project is required (use -project or BIGQUERY_PROJECT_ID)")
	}

	ctx := context.Background()

	bqClient, err := bigquery.NewClient(ctx, *project)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer bqClient.Close()

	store := infraBQ.NewStore(bqClient, log)
	prices := marketdata.NewService(marketdata.NewYahooFetcher(nil), log)

	chat := llm.NewGeminiDelegate(*model)
	if !chat.Available() {
		log.Warn().Msg("GEMINI_API_KEY not set - summary questions will get a static answer")
	}

	engine := assistant.NewEngine(store, store, prices, chat, log, nil)

	// Answer archival runs through the in-memory job queue; without a
	// bucket the queue is simply never wired.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	var assistantHandler *handlers.AssistantHandler
	if *bucket != "" {
		archiver := archive.NewArchiver(archive.NewGCSWriter(*bucket), log)
		go func() {
			log.Info().Str("bucket", *bucket).Msg("Starting answer archival worker")
			if err := jobQueue.Start(workerCtx, archiver.HandleJob); err != nil {
				log.Error().Err(err).Msg("Archival worker stopped with error")
			}
		}()
		assistantHandler = handlers.NewAssistantHandler(engine, jobQueue, log, nil)
	} else {
		log.Warn().Msg("No GCS bucket configured - answers will not be archived")
		assistantHandler = handlers.NewAssistantHandler(engine, nil, log, nil)
	}

	jobsHandler := handlers.NewJobsHandler(jobStore, log)
	portfolioHandler := handlers.NewPortfolioHandler(store, prices, log)
	voiceHandler := handlers.NewVoiceHandler(log)
	quoteHandler := handlers.NewQuoteHandler(nil)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/ai-assistant", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assistantHandler.Ask(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/portfolio", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			portfolioHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/parse-voice-transaction", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			voiceHandler.Parse(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/quote-of-day", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			quoteHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", handlers.Health)

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Job queue shutdown failed")
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
