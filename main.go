package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendgraph-api/config"
	"friendgraph-api/database"
	"friendgraph-api/jobs"
	"friendgraph-api/middleware"
	"friendgraph-api/repositories"
	"friendgraph-api/routes"
	"friendgraph-api/services"
	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := setupLogger(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.SeedData(db); err != nil {
			logger.Warn("failed to seed database", "error", err)
		} else {
			printDevToken(os.Stderr, cfg)
		}
	}

	publisher, closePublisher := setupPublisher(cfg.NatsURL, logger)
	defer closePublisher()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.AuditInterval > 0 {
		audit := services.NewAuditService(repositories.NewAccountRepository(db), logger)
		auditJob := jobs.NewRelationAuditJob(audit, cfg.AuditInterval, logger)
		auditJob.Start()
		defer auditJob.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.LogLevel == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORSOrigin),
	)
	routes.SetupRoutes(ctx, router, db, cfg, publisher, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting friendgraph API server", "port", cfg.Port, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
}

// printDevToken writes a bearer token for the seeded account to w. It never
// goes through the logger and is skipped unless seeding is enabled.
func printDevToken(w io.Writer, cfg *config.Config) {
	if !cfg.SeedData {
		return
	}
	token, err := middleware.GenerateToken(cfg.JWTSecret, "user-alice", nil)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "development token for user-alice: %s\n", token)
}

func setupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// setupPublisher connects to NATS when a URL is configured and falls back to
// logging events otherwise.
func setupPublisher(natsURL string, logger *slog.Logger) (services.EventPublisher, func()) {
	if natsURL == "" {
		logger.Info("NATS_URL not set, relationship events are only logged")
		return services.NewLogEventPublisher(logger), func() {}
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("friendgraph-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		logger.Warn("could not connect to NATS, falling back to log publisher", "url", natsURL, "error", err)
		return services.NewLogEventPublisher(logger), func() {}
	}

	logger.Info("connected to NATS", "url", nc.ConnectedUrl())
	return services.NewNatsEventPublisher(nc, logger), func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", "error", err)
		}
	}
}
