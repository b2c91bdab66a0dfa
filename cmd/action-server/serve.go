package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dialogue-actions/internal/actions"
	"dialogue-actions/internal/common/camunda"
	"dialogue-actions/internal/common/config"
	"dialogue-actions/internal/common/database"
	"dialogue-actions/internal/common/domain"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/observability"
	"dialogue-actions/internal/common/validation"
	"dialogue-actions/internal/server"
	"dialogue-actions/pkg/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server and, when enabled, the job workers",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting action server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	dom, err := domain.Load(cfg.Domain.Path)
	if err != nil {
		return fmt.Errorf("domain load failed: %w", err)
	}

	ctx := context.Background()
	deps := actions.Dependencies{}
	checks := map[string]server.ReadinessCheck{}

	// --- Redis lookup cache (optional) ---
	if cfg.Database.Redis.Enabled {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return err
		}
		defer rc.Close()
		deps.Redis = rc.Client
		checks["redis"] = rc.Ping
		zapLog.Info("Redis connected successfully")
	}

	// --- PostgreSQL reservation store (optional) ---
	if cfg.Forms.Restaurant.RecordReservations {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return err
		}
		defer pg.Close()
		deps.DB = pg.DB
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL connected successfully")
	}

	reg := registry.New()
	if err := actions.Register(reg, cfg, dom, deps, log); err != nil {
		return err
	}
	exec := actions.NewExecutor(reg, cfg, obs, log)
	zapLog.Info("actions registered", zap.Strings("actions", reg.Names()))

	// --- Job workers (optional) ---
	var workers []*camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		zc, err := camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			return err
		}
		defer zc.Close()
		checks["zeebe"] = zc.HealthCheck

		handler := camunda.NewActionJobHandler(exec, config.GetDuration(cfg.Camunda.Timeout), log)
		for _, name := range reg.Names() {
			acfg := config.GetActionConfig(cfg, name)
			w := camunda.NewWorker(zc.GetClient(), camunda.JobType(cfg.Camunda.JobTypePrefix, name), name, acfg.MaxJobsActive, handler, log)
			w.Start()
			workers = append(workers, w)
		}
	}

	validator, err := validation.NewRequestValidator()
	if err != nil {
		return err
	}

	router := server.SetupRouter(server.Options{
		WebhookPath: cfg.Server.WebhookPath,
		Version:     cfg.App.Version,
		Executor:    exec,
		Validator:   validator,
		Checks:      checks,
		Logger:      log,
	})
	srv := server.New(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webhook server failed: %w", err)
		}
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping...")
	}

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(cmd.Context(), config.GetDuration(cfg.Server.ShutdownTimeout)); err != nil {
		zapLog.Error("Error shutting down webhook server", zap.Error(err))
	}

	zapLog.Info("Action server stopped gracefully")
	return nil
}
