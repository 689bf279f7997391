package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/account_ledger/internal/clients/customerdirectory"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/core/services"
	"github.com/SscSPs/account_ledger/internal/events"
	"github.com/SscSPs/account_ledger/internal/handlers"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/SscSPs/account_ledger/internal/platform/config"
	"github.com/SscSPs/account_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/account_ledger/internal/repositories/memory"
	"github.com/SscSPs/account_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Account Ledger API
// @version 1.0
// @description Account balances, movements and consolidated customer statements.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	directory, closeDirectory := setupDirectory(cfg, repos, logger)
	defer closeDirectory()

	sink, closeSink, err := setupEventSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	publisher := events.NewPublisher(sink,
		events.WithBufferSize(cfg.EventBufferSize),
		events.WithSendTimeout(cfg.EventPublishTimeout),
		events.WithLogger(logger),
	)
	publisher.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := publisher.Close(shutdownCtx); err != nil {
			logger.Error("Failed to drain customer events", slog.String("error", err.Error()))
		}
	}()

	if cfg.ConsumeCustomerEvents {
		consumer, err := events.NewCustomerEventConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup,
			cfg.CustomerEventsTopic, events.LogHandler(logger), logger)
		if err != nil {
			return err
		}
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("Customer event consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, directory, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

func setupDirectory(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) (portssvc.CustomerDirectory, func()) {
	var directory portssvc.CustomerDirectory
	if cfg.CustomerServiceURL != "" {
		logger.Info("Resolving customer names remotely", slog.String("url", cfg.CustomerServiceURL))
		directory = customerdirectory.NewHTTPDirectory(cfg.CustomerServiceURL, cfg.CustomerLookupTimeout)
	} else {
		directory = customerdirectory.NewLocalDirectory(repos.CustomerRepo)
	}

	if cfg.RedisAddr == "" {
		return directory, func() {}
	}

	client := customerdirectory.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	logger.Info("Caching customer names in Redis", slog.String("addr", cfg.RedisAddr))
	return customerdirectory.NewCachedDirectory(directory, client, cfg.CustomerCacheTTL), func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close Redis client", slog.String("error", err.Error()))
		}
	}
}

func setupEventSink(cfg *config.Config, logger *slog.Logger) (events.Sink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewLogSink(logger), func() {}, nil
	}

	sink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.CustomerEventsTopic)
	if err != nil {
		return nil, nil, err
	}
	return sink, func() {
		if err := sink.Close(); err != nil {
			logger.Error("Failed to close Kafka writer", slog.String("error", err.Error()))
		}
	}, nil
}
