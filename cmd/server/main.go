package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"workshop-registration-api/internal/auth"
	"workshop-registration-api/internal/handler"
	"workshop-registration-api/internal/middleware"
	"workshop-registration-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}
	port := env("PORT", "8080")
	dbURL := os.Getenv("DATABASE_URL")

	ctx := context.Background()

	var st store.Store
	if dbURL == "" {
		// dev mode: everything lives in process memory
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	} else {
		if err := store.Migrate(ctx, dbURL); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("db ping failed")
		}
		logger.Info().Msg("connected to postgres")
		st = store.NewPostgres(pool)
	}

	// seed the bootstrap admin; idempotent across restarts and replicas
	adminUser := env("ADMIN_USERNAME", "admin")
	adminPass := env("ADMIN_PASSWORD", "admin")
	hash, err := auth.HashPassword(adminPass)
	if err != nil {
		logger.Fatal().Err(err).Msg("admin password hash failed")
	}
	if err := st.EnsureAdmin(ctx, adminUser, hash); err != nil {
		logger.Fatal().Err(err).Msg("admin seed failed")
	}

	gate := middleware.NewGate(st, secret)
	loginLimiter := middleware.NewRateLimiter(5, 10)
	h := handler.New(st, secret, logger)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: middleware.RequestLogging(logger)(h.Routes(gate, loginLimiter)),
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
