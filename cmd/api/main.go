// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/pressly/goose/v3"

	"github.com/SimonMage/TravelSobolev/internal/config"
	"github.com/SimonMage/TravelSobolev/internal/external"
	"github.com/SimonMage/TravelSobolev/internal/handler"
	"github.com/SimonMage/TravelSobolev/internal/metrics"
	"github.com/SimonMage/TravelSobolev/internal/middleware"
	"github.com/SimonMage/TravelSobolev/internal/repo"
	"github.com/SimonMage/TravelSobolev/internal/service"
	"github.com/SimonMage/TravelSobolev/migrations"
	"github.com/SimonMage/TravelSobolev/spec"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logHandler := newLogHandler(cfg)
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	if cfg.MigrateOnStart {
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// pgxpool.New does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Services ---------------------------------------------------------
	geo := repo.NewCachedGeographyRepo(repo.NewGeographyRepo(pool), cfg.GeographyCacheTTL)
	trips := repo.NewTripRepo(pool)
	stops := repo.NewStopRepo(pool)
	pois := repo.NewPoiRepo(pool)
	history := repo.NewSearchHistoryRepo(pool)
	profiles := repo.NewProfileRepo(pool)

	providers := external.NewClient(external.Config{
		Weather:   external.ProviderConfig(cfg.Weather),
		Places:    external.ProviderConfig(cfg.Places),
		Geocoding: external.ProviderConfig(cfg.Geocoding),
	}, logger)

	resolver := service.NewCityResolver(geo)
	server := handler.NewServer(handler.Services{
		Trips:     service.NewTripService(trips, stops),
		Stops:     service.NewStopService(trips, stops, pois, resolver),
		Cities:    service.NewCityService(resolver, geo, history, profiles, providers, providers, logger),
		Search:    service.NewSearchService(geo, history, providers, logger),
		Geography: service.NewGeographyService(geo),
		Pois:      service.NewPoiService(pois),
		History:   service.NewHistoryService(history),
		Users:     service.NewUserService(profiles),
	}, logger)

	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// SlogLogger writes one structured log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewMetrics)

	r.Handle("/metrics", metrics.Handler())
	r.Handle("/openapi.yaml", spec.Handler())
	r.Mount("/", server.Routes(auth.Require, auth.Optional))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The write timeout leaves room for the slowest provider call.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logHandler, slog.LevelError),
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newLogHandler returns colored human-readable output in development and
// JSON lines otherwise.
func newLogHandler(cfg config.Config) slog.Handler {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.IsDevelopment() {
		return tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// migrate applies pending goose migrations. goose needs database/sql, not a pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", len(results))
	return nil
}
