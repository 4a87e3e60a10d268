package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/event"
	accountUseCase "github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/account"
	ledgerUseCase "github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	roundUseCase "github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/round"
	settlementUseCase "github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/settlement"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/publisher"
	timeProvider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/app"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/config"
)

// serviceMetrics is what both the Prometheus and the no-op recorders provide
type serviceMetrics interface {
	coreport.Metrics
	middleware.HTTPRecorder
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := app.NewLogger(cfg, "wager-ledger")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	ids := idgen.NewUUIDGenerator()

	var appMetrics serviceMetrics = metrics.NewNoopMetrics()
	var prom *metrics.PrometheusMetrics
	if cfg.Metrics.Enabled {
		prom = metrics.NewPrometheusMetrics(cfg.Metrics.Namespace)
		appMetrics = prom
	}

	rootCtx, stopRoot := context.WithCancel(context.Background())
	defer stopRoot()

	store, err := app.OpenStore(rootCtx, cfg, appLogger, tp, appMetrics)
	if err != nil {
		appLogger.Error("Failed to open store", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error("Failed to close store", map[string]any{"error": err.Error()})
		}
	}()

	payouts, err := entity.NewPayoutTable(cfg.Wager.PayoutMultiplier, cfg.Wager.AllowedColors, cfg.Wager.ColorMultipliers)
	if err != nil {
		appLogger.Error("Invalid payout configuration", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	if err := dto.RegisterValidators(payouts); err != nil {
		appLogger.Error("Failed to register validators", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	limits := entity.ListLimits{Default: cfg.Wager.DefaultListLimit, Max: cfg.Wager.MaxListLimit}

	tokens, err := auth.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL(), tp)
	if err != nil {
		appLogger.Error("Failed to create token service", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}

	// Use cases share one transaction manager and one outbox recorder
	txManager := transaction.NewTransactionManager(store.UoW, appLogger, tp, appMetrics, app.RetryPolicy(cfg.Transaction))
	recorder := outbox.NewRecorder(store.UoW, ids, tp)

	accounts := accountUseCase.NewAccountUseCase(txManager, auth.NewBcryptHasher(cfg.Auth.BcryptCost), ids, tp, appLogger, cfg.Wager.MinPasswordLength)
	ledger := ledgerUseCase.NewLedgerUseCase(txManager, recorder, ids, tp, appLogger, limits)
	rounds := roundUseCase.NewRoundUseCase(txManager, recorder, payouts, ids, tp, appLogger, limits)
	settlement := settlementUseCase.NewSettlementUseCase(txManager, recorder, payouts, tp, appLogger, appMetrics)

	if err := migration.EnsureBootstrapAdmin(rootCtx, accounts, appLogger, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		appLogger.Error("Failed to ensure bootstrap admin", map[string]any{"error": err.Error()})
	}

	eventPublisher := newPublisher(cfg, appLogger)
	dispatcher := outbox.NewDispatcher(store.UoW, eventPublisher, appLogger, tp, appMetrics, outbox.DispatcherConfig{
		PollInterval: coreport.Duration(cfg.Outbox.PollInterval()),
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
	})
	if cfg.Outbox.Enabled {
		dispatcher.Start(rootCtx)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, appMetrics, cfg.Server.CORSOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:    handler.NewAuthHandler(accounts, tokens, appLogger),
		Account: handler.NewAccountHandler(accounts),
		Ledger:  handler.NewLedgerHandler(ledger),
		Round:   handler.NewRoundHandler(rounds, settlement, appLogger),
		Health:  handler.NewHealthHandler(store.UoW, tp, appLogger),
	}, tokens)
	if prom != nil {
		routes.MountMetrics(router, cfg.Metrics.Path, prom.Handler())
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"driver": cfg.Database.Driver,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", map[string]any{"signal": sig.String()})
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Stopping outbox dispatcher...", nil)
	dispatcher.Stop()
	stopRoot()
	if err := eventPublisher.Close(); err != nil {
		appLogger.Error("Failed to close event publisher", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// newPublisher returns a Kafka publisher when brokers are configured and
// reachable, and a log publisher otherwise
func newPublisher(cfg *config.Config, logger coreport.Logger) event.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, ledger events will be logged", nil)
		return publisher.NewLogPublisher(logger)
	}

	kafka, err := publisher.NewKafkaPublisher(publisher.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		ClientID:     cfg.Kafka.ClientID,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RequiredAcks: cfg.Kafka.RequiredAcks,
	}, logger)
	if err != nil {
		logger.Error("Kafka unavailable, ledger events will be logged and kept pending", map[string]any{
			"error":   err.Error(),
			"brokers": cfg.Kafka.Brokers,
		})
		return publisher.NewLogPublisher(logger)
	}
	return kafka
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	var missingConfigs []string
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Database.Driver == "memory" {
			warnings = append(warnings, "database.driver is memory; balances will not survive a restart")
		}
		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if cfg.Database.Driver == "postgres" && sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 bytes in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
