package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"content-summarizer/internal/config"
	hhttp "content-summarizer/internal/handler/http"
	hauth "content-summarizer/internal/handler/http/auth"
	"content-summarizer/internal/handler/http/requestid"
	hsummary "content-summarizer/internal/handler/http/summary"
	pgRepo "content-summarizer/internal/infra/adapter/persistence/postgres"
	"content-summarizer/internal/infra/db"
	"content-summarizer/internal/infra/fetcher"
	"content-summarizer/internal/infra/model"
	"content-summarizer/internal/infra/tokenizer"
	"content-summarizer/internal/observability/logging"
	"content-summarizer/internal/observability/tracing"
	"content-summarizer/internal/repository"
	"content-summarizer/internal/usecase/ingest"
	"content-summarizer/internal/usecase/summarize"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	modelCfg, err := model.LoadConfig()
	if err != nil {
		logger.Error("failed to load model configuration", slog.Any("error", err))
		os.Exit(1)
	}

	pipelineCfg, err := config.LoadPipelineConfig()
	if err != nil {
		logger.Error("failed to load pipeline configuration", slog.Any("error", err))
		os.Exit(1)
	}

	svc := buildSummarizer(logger, modelCfg, pipelineCfg)

	// Persistence is optional: without DATABASE_URL the API serves
	// summaries without storing them.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var database *sql.DB
	var repo repository.SummaryRepository
	if os.Getenv("DATABASE_URL") != "" {
		database = initDatabase(logger)
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
		repo = pgRepo.NewSummaryRepo(database)
		go db.ReportPoolStats(ctx, database, 15*time.Second)
	} else {
		logger.Info("DATABASE_URL not set, persistence disabled")
	}

	ingestSvc := buildIngest(logger)

	var protect func(http.Handler) http.Handler
	if serverCfg.AuthEnabled {
		protect = hauth.Authz
		validateJWTSecret(logger)
	} else {
		logger.Warn("authentication is DISABLED - not recommended for production")
	}

	mux := setupRoutes(logger, serverCfg, modelCfg, svc, ingestSvc, repo, pipelineCfg.BatchParallelism, database, protect)
	handler := applyMiddleware(logger, serverCfg, mux)

	runServer(ctx, cancel, logger, serverCfg, handler)
}

// buildSummarizer wires the generator, tokenizer and tier table into a
// pipeline service.
func buildSummarizer(logger *slog.Logger, modelCfg *model.Config, pipelineCfg *config.PipelineConfig) *summarize.Service {
	generator, err := model.New(modelCfg)
	if err != nil {
		logger.Error("failed to build generator", slog.Any("error", err))
		os.Exit(1)
	}

	estimator := buildEstimator(logger, modelCfg)

	tiers, err := config.LoadTiers(pipelineCfg.TiersConfigPath)
	if err != nil {
		logger.Error("failed to load tier table", slog.Any("error", err))
		os.Exit(1)
	}

	svc, err := summarize.NewService(generator, estimator, tiers,
		summarize.WithMaxPasses(pipelineCfg.MaxPasses),
		summarize.WithChunkMaxRunes(pipelineCfg.ChunkMaxRunes),
		summarize.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to build summarization service", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("summarizer ready",
		slog.String("backend", modelCfg.Backend),
		slog.String("model", modelCfg.Model),
		slog.Int("input_capacity_tokens", modelCfg.InputCapacityTokens))
	return svc
}

// buildEstimator picks the token estimator for the configured backend.
// OpenAI models get exact BPE counts when the encoding is available;
// everything else uses the rune heuristic.
func buildEstimator(logger *slog.Logger, modelCfg *model.Config) summarize.TokenEstimator {
	if modelCfg.Backend == model.BackendOpenAI {
		tk, err := tokenizer.NewTiktoken("")
		if err == nil {
			return tk
		}
		logger.Warn("tiktoken unavailable, falling back to heuristic estimator",
			slog.Any("error", err))
	}
	return tokenizer.NewHeuristic(0)
}

// buildIngest wires the readability fetcher. A configuration error
// disables URL ingestion instead of aborting startup.
func buildIngest(logger *slog.Logger) *ingest.Service {
	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("invalid content fetch configuration, URL ingestion disabled",
			slog.Any("error", err))
		return nil
	}

	svc, err := ingest.NewService(fetcher.NewReadabilityFetcher(fetchCfg), logger)
	if err != nil {
		logger.Warn("failed to build ingest service, URL ingestion disabled",
			slog.Any("error", err))
		return nil
	}
	return svc
}

// validateJWTSecret enforces minimum secret strength at startup.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set when AUTH_ENABLED is true")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupRoutes registers all HTTP routes (public and protected).
func setupRoutes(
	logger *slog.Logger,
	serverCfg *config.ServerConfig,
	modelCfg *model.Config,
	svc *summarize.Service,
	ingestSvc *ingest.Service,
	repo repository.SummaryRepository,
	batchParallelism int,
	database *sql.DB,
	protect func(http.Handler) http.Handler,
) *http.ServeMux {
	version := getVersion()

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, Backend: modelCfg.Backend})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	if serverCfg.AuthEnabled {
		store, err := hauth.NewCredentialStoreFromEnv()
		if err != nil {
			logger.Error("failed to load auth credentials", slog.Any("error", err))
			os.Exit(1)
		}
		// Token issuance gets its own tight rate limit.
		authLimiter := hhttp.NewRateLimiter(5, 1*time.Minute)
		mux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(store)))
	}

	hsummary.Register(mux, hsummary.Deps{
		Svc:         svc,
		Ingest:      ingestSvc,
		Repo:        repo,
		Parallelism: batchParallelism,
		Logger:      logger,
		Protect:     protect,
	})

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: Request ID -> IP Rate Limit -> Recovery ->
// Logging -> Input Validation -> Body Limit -> Tracing -> Metrics ->
// Timeout.
func applyMiddleware(logger *slog.Logger, serverCfg *config.ServerConfig, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(serverCfg.RateLimitPerMinute, 1*time.Minute)

	chain := handler
	chain = hhttp.Timeout(serverCfg.RequestTimeout)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.LimitRequestBody(serverCfg.MaxBodyBytes)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, serverCfg *config.ServerConfig, handler http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", serverCfg.Addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
