package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Ramsey-B/veranda/config"
	"github.com/Ramsey-B/veranda/internal/handlers"
	"github.com/Ramsey-B/veranda/internal/repositories/amenity"
	"github.com/Ramsey-B/veranda/internal/repositories/location"
	"github.com/Ramsey-B/veranda/internal/repositories/propertytype"
	"github.com/Ramsey-B/veranda/internal/repositories/requirement"
	"github.com/Ramsey-B/veranda/internal/repositories/session"
	"github.com/Ramsey-B/veranda/internal/repositories/submission"
	"github.com/Ramsey-B/veranda/internal/seed"
	"github.com/Ramsey-B/veranda/pkg/events"
	"github.com/Ramsey-B/veranda/pkg/health"
	"github.com/Ramsey-B/veranda/pkg/kafka"
	"github.com/Ramsey-B/veranda/pkg/middleware"
	"github.com/Ramsey-B/veranda/pkg/startup"
	"github.com/Ramsey-B/veranda/pkg/storage"
	"github.com/Ramsey-B/veranda/pkg/tracing"
	"github.com/Ramsey-B/veranda/pkg/tracing/exporters"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger := newZapLogger(cfg)
	defer zapLogger.Sync()
	logger := zapadapter.NewZapEctoLogger(zapLogger, nil)

	ctx := context.Background()

	tp, err := tracing.Init(ctx, cfg.AppName, exporters.OTLPConfig{
		Endpoint: cfg.TracingEndpoint,
		Protocol: cfg.TracingProtocol,
		Insecure: true,
		Timeout:  10 * time.Second,
	}, cfg.TracingEnabled)
	if err != nil {
		logger.WithError(err).Error("failed to initialize tracing")
	}
	if tp != nil {
		defer tp.Shutdown(ctx)
	}

	boot := startup.New(logger, cfg.StartupMaxAttempts)
	storageDep := &storageDependency{cfg: cfg, logger: logger}
	boot.AddDependency(storageDep)

	if err := boot.Start(ctx); err != nil {
		// The store can run entirely from memory; a missing backend costs
		// durability, not availability.
		logger.WithError(err).WithField("driver", cfg.StorageDriver).Error("storage backend unavailable, falling back to memory")
		storageDep.backend = storage.NewMemoryBackend()
	}

	bridge := storage.NewBridge(storageDep.backend, cfg.StorageNamespace, logger)
	logger.WithField("backend", bridge.BackendName()).Info("storage bridge ready")

	submissions := submission.NewRepository(bridge, logger)
	requirements := requirement.NewRepository(bridge, logger)
	locations := location.NewRepository(bridge, logger)
	propertyTypes := propertytype.NewRepository(bridge, logger)
	amenities := amenity.NewRepository(bridge, logger)
	sessions := session.NewRepository(cfg.AdminUsername, cfg.AdminPassword, bridge, logger)

	if cfg.SeedReferenceData {
		seed.ReferenceData(ctx, locations, propertyTypes, amenities, logger)
	}

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}
	emitter := events.NewEmitter(producer, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	checker := health.NewChecker(bridge, version)
	checker.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	handlers.NewAuthHandler(sessions, logger).RegisterRoutes(api)
	handlers.NewPublicHandler(submissions, requirements, locations, propertyTypes, amenities, emitter, logger).RegisterRoutes(api)

	admin := api.Group("/admin", middleware.AuthGate(sessions))
	handlers.NewAdminSubmissionHandler(submissions, emitter, logger).RegisterRoutes(admin)
	handlers.NewAdminRequirementHandler(requirements, emitter, logger).RegisterRoutes(admin)
	handlers.NewAdminReferenceHandler(locations, propertyTypes, amenities, logger).RegisterRoutes(admin)

	checker.SetReady(true)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped")
		}
	}()
	logger.WithField("port", cfg.Port).Infof("%s listening on port %d", cfg.AppName, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("failed to shut down server cleanly")
	}
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("failed to stop dependencies cleanly")
	}
}

func newZapLogger(cfg *config.Config) *zap.Logger {
	if cfg.PrettyLogs {
		zapLogger, _ := zap.NewDevelopment()
		return zapLogger
	}
	zapLogger, _ := zap.NewProduction()
	return zapLogger
}

// storageDependency connects the configured storage backend as a startup
// dependency so it participates in the retry/backoff cycle.
type storageDependency struct {
	cfg     *config.Config
	logger  ectologger.Logger
	backend storage.Backend
}

func (d *storageDependency) GetName() string {
	return "storage"
}

func (d *storageDependency) DependsOn() []string {
	return nil
}

func (d *storageDependency) Start(ctx context.Context) error {
	switch d.cfg.StorageDriver {
	case "memory":
		d.backend = storage.NewMemoryBackend()
		return nil
	case "redis":
		backend, err := storage.NewRedisBackend(storage.RedisConfig{
			Host:     d.cfg.RedisHost,
			Port:     d.cfg.RedisPort,
			Password: d.cfg.RedisPassword,
			DB:       d.cfg.RedisDB,
		}, d.logger)
		if err != nil {
			return err
		}
		d.backend = backend
		return nil
	case "sqlite":
		backend, err := storage.NewSQLiteBackend(d.cfg.SQLitePath, d.logger)
		if err != nil {
			return err
		}
		d.backend = backend
		return nil
	case "postgres":
		backend, err := storage.NewPostgresBackend(d.cfg.PostgresDSN, d.logger)
		if err != nil {
			return err
		}
		d.backend = backend
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", d.cfg.StorageDriver)
	}
}

func (d *storageDependency) Stop(ctx context.Context) error {
	if d.backend == nil {
		return nil
	}
	return d.backend.Close()
}
