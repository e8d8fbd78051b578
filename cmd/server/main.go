// Package main provides the campus chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/campushq/campus-chatbot-go/internal/chat"
	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/logger"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
	"github.com/campushq/campus-chatbot-go/internal/sentry"
	"github.com/campushq/campus-chatbot-go/internal/storage"
	"github.com/campushq/campus-chatbot-go/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logOpts := logger.Options{}
	if cfg.BetterStackEnabled {
		logOpts.BetterStackToken = cfg.BetterStackToken
		logOpts.BetterStackEndpoint = cfg.BetterStackEndpoint
	}
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logOpts)
	// Context value extraction (user_id, channel, request_id) in package-level
	// slog.*Context calls goes through the default logger.
	slog.SetDefault(log.Logger)

	log.WithField("instance", cfg.InstanceID).Info("Starting campus chatbot server")
	if logOpts.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if cfg.SentryEnabled {
		if err := sentry.Initialize(sentry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			Release:          cfg.SentryRelease,
			SampleRate:       cfg.SentrySampleRate,
			TracesSampleRate: cfg.SentryTracesSampleRate,
		}); err != nil {
			log.WithError(err).Warn("Failed to initialize Sentry, continuing without it")
		} else {
			log.Info("Sentry initialized")
		}
	}

	// Catalog database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to open catalog database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Catalog database ready")

	if cfg.SeedFile != "" {
		if err := db.SeedFromFile(context.Background(), cfg.SeedFile); err != nil {
			log.WithError(err).WithField("file", cfg.SeedFile).Error("Failed to seed catalog")
			os.Exit(1)
		}
		log.WithField("file", cfg.SeedFile).Info("Catalog seeded")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	// LLM clients, created concurrently since both dial out on startup.
	// Failures degrade the bot to form-only operation instead of aborting.
	var classifier nlu.Classifier
	var responder nlu.Responder
	var g errgroup.Group
	g.Go(func() error {
		var err error
		classifier, err = nlu.NewClassifier(context.Background(), cfg, m)
		return err
	})
	g.Go(func() error {
		var err error
		responder, err = nlu.NewResponder(context.Background(), cfg, m)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("LLM setup incomplete, degraded to keyword handling")
	}
	if classifier != nil && classifier.IsEnabled() {
		log.WithField("provider", classifier.Provider()).Info("Intent classifier ready")
	}

	// Conversation state
	store, err := dialogue.NewStore(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create conversation store")
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()
	log.WithField("backend", cfg.ConversationStore).Info("Conversation store ready")

	// Per-user LLM budget, separate from the message rate limit so
	// expensive classifier calls have their own ceiling.
	llmLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "llm",
		Burst:         cfg.LLMRateBurst,
		RefillRate:    cfg.LLMRateRefill / 3600.0,
		DailyLimit:    cfg.LLMRateDaily,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		Metrics:       m,
	})
	defer llmLimiter.Stop()

	orchestrator := chat.New(db, classifier, responder, store, normalize.New(nil), m,
		chat.WithLLMLimiter(llmLimiter))

	// Per-user message rate limiting
	userLimiter := ratelimit.NewUserRateLimiter(
		cfg.UserRateBurst, cfg.UserRateRefill, config.RateLimiterCleanupInterval, m)
	defer userLimiter.Stop()

	handlerOpts := []webhook.HandlerOption{
		webhook.WithUserRateLimiter(userLimiter),
		webhook.WithMessageTimeout(cfg.MessageTimeout),
	}
	if cfg.TwilioEnabled {
		handlerOpts = append(handlerOpts, webhook.WithTwilioValidation(cfg.TwilioAuthToken))
		log.Info("Twilio channel enabled with signature validation")
	}
	handler := webhook.NewHandler(orchestrator, m, log, handlerOpts...)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryEnabled {
		// Repanic lets gin.Recovery keep producing the 500 after capture.
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, handler, db, registry, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in gauge updater goroutine")
			}
		}()
		updateGauges(jobCtx, db, userLimiter, m, log)
	}()

	go func() {
		log.WithField("port", cfg.Port).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancelJobs()

	jobsDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(jobsDone)
	}()
	select {
	case <-jobsDone:
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for background jobs to stop")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if classifier != nil {
		if err := classifier.Close(); err != nil {
			log.WithError(err).Error("Failed to close classifier")
		}
	}
	if responder != nil {
		if err := responder.Close(); err != nil {
			log.WithError(err).Error("Failed to close responder")
		}
	}
	if cfg.SentryEnabled {
		sentry.Flush(2 * time.Second)
	}

	log.Info("Server stopped")
}
