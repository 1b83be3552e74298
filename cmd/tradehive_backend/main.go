package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tradehive/tradehive_backend/internal/adapters/database/pgsql"
	"github.com/tradehive/tradehive_backend/internal/adapters/email"
	"github.com/tradehive/tradehive_backend/internal/adapters/payments"
	pdfrender "github.com/tradehive/tradehive_backend/internal/adapters/pdf"
	"github.com/tradehive/tradehive_backend/internal/adapters/storage"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/core/services"
	"github.com/tradehive/tradehive_backend/internal/handlers"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/pkg/database"
)

// @title TradeHive CRM API
// @version 1.0
// @description Multi-tenant field-service CRM and invoicing backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.AppBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	integrations := buildIntegrations(cfg, logger)
	container := services.NewServiceContainer(cfg, &repos, integrations)

	handlers.RegisterRoutes(r, cfg, container, integrations.PDFRenderer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildIntegrations wires the outbound adapters: Stripe, object storage,
// email delivery and PDF rendering.
func buildIntegrations(cfg *config.Config, logger *slog.Logger) services.Integrations {
	var store portssvc.ObjectStore
	if cfg.GCSBucket != "" {
		gcsStore, err := storage.NewGCSStore(context.Background(), cfg.GCSBucket)
		if err != nil {
			logger.Error("Failed to initialize object storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = gcsStore
	} else {
		logger.Warn("GCS_BUCKET not set; attachment uploads are disabled.")
		store = storage.NewDisabledStore()
	}

	var gmail *email.GmailSender
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		gmail = email.NewGmailSender(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}
	var smtp *email.SMTPSender
	if cfg.SMTPHost != "" {
		smtp = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}

	stripeProvider := payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	return services.Integrations{
		CheckoutProvider: stripeProvider,
		ConnectProvider:  stripeProvider,
		PassThroughFee:   payments.PassThroughFeeCents,
		ObjectStore:      store,
		EmailSender:      email.NewChainSender(gmail, smtp, logger),
		PDFRenderer:      pdfrender.NewRenderer(),
	}
}

// runMigrations applies all pending SQL migrations before the server
// starts taking traffic.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
