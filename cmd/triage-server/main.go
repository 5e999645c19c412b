package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/triage/triage/internal/config"
	"github.com/triage/triage/internal/domain/assessment"
	"github.com/triage/triage/internal/domain/provider"
	"github.com/triage/triage/internal/platform/auth"
	"github.com/triage/triage/internal/platform/db"
	"github.com/triage/triage/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "triage-server",
		Short: "Patient health risk assessment API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(assessCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the assessment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func assessCmd() *cobra.Command {
	var (
		file string
		lat  float64
		lng  float64
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a one-shot assessment from a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			var snap assessment.PatientSnapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			ctx := context.Background()
			dir, err := provider.LoadDirectory(ctx, &provider.StaticSource{})
			if err != nil {
				return fmt.Errorf("load provider directory: %w", err)
			}

			var loc *provider.Location
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				loc = &provider.Location{Lat: lat, Lng: lng}
			}

			svc := assessment.NewService(assessment.NewScorer(), provider.NewRecommender(dir, nil), logger)
			result, err := svc.Analyze(ctx, snap, loc)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "snapshot.json", "Path to a patient snapshot JSON file")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Patient latitude for hospital suggestions")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Patient longitude for hospital suggestions")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Provider directory. When DATABASE_URL is configured the directory is
	// loaded once from Postgres at startup; otherwise the embedded seed (or
	// PROVIDER_FILE) is used.
	var src provider.Source
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		src = provider.NewPGSource(pool)
	} else {
		src = &provider.StaticSource{Path: cfg.ProviderFile}
	}

	dir, err := provider.LoadDirectory(ctx, src)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load provider directory")
	}
	logger.Info().
		Int("hospitals", len(dir.Hospitals())).
		Int("doctors", len(dir.Doctors())).
		Msg("provider directory loaded")

	recommender := provider.NewRecommender(dir, nil)
	scorer := assessment.NewScorer()
	assessSvc := assessment.NewService(scorer, recommender, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("256K"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"version":   version,
			"hospitals": len(dir.Hospitals()),
			"doctors":   len(dir.Doctors()),
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// API group
	apiV1 := e.Group("/api/v1")

	// Auth middleware
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{Secret: []byte(cfg.AuthSecret)}))
	}

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Domain handlers
	assessment.NewHandler(assessSvc).RegisterRoutes(apiV1)
	provider.NewHandler(dir, recommender).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}
