package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commissionUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/commission"
	partyUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/party"
	transactionUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/transaction"

	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	isProduction := cfg.Environment == config.Production
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(isProduction)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(databaseConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(context.Background()); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.MigrationManager().MigrateAll(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	tokenProvider, err := auth.NewJWTProvider(
		cfg.Auth.Secret,
		cfg.Auth.Algorithm,
		time.Duration(cfg.Auth.ExpiryMinutes)*time.Minute,
		tp,
	)
	if err != nil {
		appLogger.Error("Failed to initialize token provider", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), tp, appLogger)
	partyRepo := repository.NewPartyRepository(dbManager.DB(), appLogger)
	commissionRepo := repository.NewCommissionRepository(dbManager.DB(), appLogger)
	uow := dbManager.CreateUnitOfWork()

	transactionService := transactionUseCase.NewService(transactionRepo, partyRepo, uow, tp, appLogger)
	partyService := partyUseCase.NewUseCase(partyRepo, transactionRepo, tp, appLogger)
	commissionService := commissionUseCase.NewUseCase(commissionRepo, transactionRepo, tp, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(
		router,
		handler.NewTransactionHandler(transactionService, partyService, commissionService, appLogger),
		handler.NewPartyHandler(partyService, appLogger),
		handler.NewCommissionHandler(commissionService, appLogger),
		handler.NewAuthHandler(tokenProvider, appLogger),
		handler.NewHealthHandler(),
		tokenProvider,
		appLogger,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	appLogger.Info("Server exited gracefully", nil)
}

// databaseConfig flattens the application config into the database
// adapter's own config type
func databaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay / time.Second),
	}
}

// validateConfig fails fast on anything the server cannot run without
func validateConfig(cfg *config.Config) error {
	required := []struct {
		missing bool
		name    string
	}{
		{cfg.Server.Port == 0, "server.port"},
		{cfg.Server.ReadTimeout == 0, "server.readTimeout"},
		{cfg.Server.WriteTimeout == 0, "server.writeTimeout"},
		{cfg.Server.ShutdownTimeout == 0, "server.shutdownTimeout"},
		{cfg.Database.Host == "", "database.host (or RP_DB_HOST environment variable)"},
		{cfg.Database.Username == "", "database.username (or RP_DB_USERNAME environment variable)"},
		{cfg.Database.Password == "", "database.password (or RP_DB_PASSWORD environment variable)"},
		{cfg.Database.Database == "", "database.database (or RP_DB_NAME environment variable)"},
		{cfg.Database.QueryTimeout == 0, "database.queryTimeout"},
		{cfg.Auth.Secret == "", "auth.secret (or RP_AUTH_SECRET environment variable)"},
		{cfg.Auth.ExpiryMinutes <= 0, "auth.expiryMinutes"},
		{cfg.Environment == "", "environment"},
		{cfg.Logger.Level == "", "logger.level"},
	}

	var missing []string
	for _, check := range required {
		if check.missing {
			missing = append(missing, check.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	switch cfg.Environment {
	case config.Development, config.Production, config.Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Environment == config.Production && cfg.Database.SSLMode == "disable" {
		log.Printf("Warning: database.sslMode should not be 'disable' in production")
	}

	return nil
}
