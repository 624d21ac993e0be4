package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/handler"
	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/repository"
	"github.com/Dan9191/kundli-service/internal/scheduler"
	"github.com/Dan9191/kundli-service/internal/service"
	"github.com/Dan9191/kundli-service/internal/utils/email"
)

func main() {
	// A missing .env file is fine; the environment wins anyway
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional persistent sample cache
	var store ephemeris.Store
	var db handler.Pinger
	if cfg.EphemerisCacheDB != "" {
		conn, err := sql.Open("postgres", cfg.EphemerisCacheDB)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()
		if err := conn.PingContext(ctx); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo := repository.NewRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatalf("Failed to prepare database: %v", err)
		}
		store, db = repo, repo
		logger.Info("Ephemeris samples persisted to Postgres")
	}

	// Initialize layers
	m := metrics.NewCollector("kundli")
	provider, err := ephemeris.NewProvider(cfg, store, logger, m)
	if err != nil {
		logger.Fatalf("Failed to create ephemeris provider: %v", err)
	}
	svc := service.NewService(provider, logger, cfg, m)

	var notifier scheduler.Notifier
	if cfg.DigestEnabled() {
		notifier = email.NewSender(cfg, logger)
	}
	sched, err := scheduler.New(cfg, svc, notifier, logger)
	if err != nil {
		logger.Fatalf("Failed to schedule daily panchang: %v", err)
	}
	sched.Start()
	go func() {
		// fill /panchang/today without waiting for the first tick
		if err := sched.Run(ctx); err != nil {
			logger.Warnf("Initial daily panchang failed: %v", err)
		}
	}()

	h := handler.NewHandler(svc, sched, db, logger)
	r := handler.NewRouter(h, cfg, logger, m)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		sched.Stop(shutdownCtx)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	<-idle
	logger.Info("Server stopped")
}
