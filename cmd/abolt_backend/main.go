package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	_ "github.com/rahmannascenia/accountingbolt/cmd/docs"
	"github.com/rahmannascenia/accountingbolt/internal/core/services"
	"github.com/rahmannascenia/accountingbolt/internal/handlers"
	"github.com/rahmannascenia/accountingbolt/internal/middleware"
	"github.com/rahmannascenia/accountingbolt/internal/platform/config"
	"github.com/rahmannascenia/accountingbolt/internal/repositories/database/pgsql"
	"github.com/rahmannascenia/accountingbolt/pkg/database"
)

// @title           AccountingBolt Reporting API
// @version         1.0
// @description     Multi-currency ledger aggregation, reporting and unrealized FX revaluation.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repos := pgsql.NewRepositoryContainer(pool)
	svcContainer := services.NewServiceContainer(repos, cfg)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.StructuredLoggingMiddleware(logger))

	if cfg.RateLimitEnabled {
		rate, err := limiter.NewRateFromFormatted(cfg.RateLimitPeriod)
		if err != nil {
			logger.Error("Invalid rate limit format", slog.String("value", cfg.RateLimitPeriod), slog.String("error", err.Error()))
			os.Exit(1)
		}
		engine.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	}

	handlers.RegisterRoutes(engine, svcContainer, cfg)

	logger.Info("Starting server", slog.String("port", cfg.Port))
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string) error {
	// Migrations run over a temporary database/sql connection using the pgx
	// stdlib driver, separate from the application pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}
