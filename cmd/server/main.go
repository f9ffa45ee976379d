package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"themeclash/internal/config"
	"themeclash/internal/content"
	"themeclash/internal/database"
	"themeclash/internal/handlers"
	"themeclash/internal/security"
	"themeclash/internal/session"
	"themeclash/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := newLogger(cfg.LogLevel)

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}
	log.Info().Str("type", cfg.DatabaseType).Msg("database ready")

	// Wire the stack: kv store, content provider, session manager, handlers
	kv := store.NewSQLStore(db)
	provider := content.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel)
	contentStore := content.NewStore(kv, provider, log)
	manager := session.NewManager(kv, contentStore, log)

	middleware := handlers.NewMiddleware(cfg.JWTSecret, log)
	gameHandler := handlers.NewGameHandler(manager, log)
	limiter := security.NewRateLimiter(60, time.Minute)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)
	r.Get("/health", handlers.Health)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(middleware.Identify)
		gameHandler.Routes(r)
	})

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
