// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"salesops-workers/internal/common/aws"
	"salesops-workers/internal/common/camunda"
	"salesops-workers/internal/common/config"
	"salesops-workers/internal/common/database"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/observability"
	"salesops-workers/internal/common/session"
	"salesops-workers/internal/consultation"
	"salesops-workers/internal/triage"

	// Triage Workers (4)
	cvc "salesops-workers/internal/workers/triage/check-van-compatibility"
	et "salesops-workers/internal/workers/triage/evaluate-triage"
	rta "salesops-workers/internal/workers/triage/record-triage-answer"
	sts "salesops-workers/internal/workers/triage/start-triage-session"

	// Consultation Workers (3)
	fc "salesops-workers/internal/workers/consultation/file-consultation"
	lts "salesops-workers/internal/workers/consultation/load-triage-snapshot"
	nmr "salesops-workers/internal/workers/consultation/notify-manual-review"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})

	log.Info("starting worker manager", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	log.Info("PostgreSQL connected successfully", nil)

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("Redis connected successfully", nil)

	// --- Collaborators ---
	catalog := triage.DefaultCatalog()
	sessions := session.NewStore(rdb.Client, cfg.Triage)
	consultations := consultation.NewRepository(pg.DB)

	var publisher nmr.Publisher
	var mailer nmr.Mailer
	if cfg.Notifications.SNS.Enabled || cfg.Notifications.SES.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if cfg.Notifications.SNS.Enabled {
			publisher = aws.NewSNSFromConfig(awsCfg, cfg.Notifications.SNS.TopicARN)
		}
		if cfg.Notifications.SES.Enabled {
			mailer = aws.NewSESFromConfig(awsCfg, cfg.Notifications.SES.FromEmail)
		}
	}

	// --- Workers ---
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			return
		}
		wc := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), taskType, wc, handler, obs, log))
	}
	wcfg := func(taskType string) config.WorkerConfig {
		return config.GetWorkerConfig(cfg, taskType)
	}

	start(sts.TaskType, sts.NewHandler(sts.LoadConfig(wcfg(sts.TaskType), cfg.Triage), sessions, catalog, log).Handle)
	start(rta.TaskType, rta.NewHandler(rta.LoadConfig(wcfg(rta.TaskType)), sessions, catalog, log).Handle)
	start(et.TaskType, et.NewHandler(et.LoadConfig(wcfg(et.TaskType)), catalog, log).Handle)
	start(cvc.TaskType, cvc.NewHandler(cvc.LoadConfig(wcfg(cvc.TaskType)), catalog, log).Handle)

	start(fc.TaskType, fc.NewHandler(fc.LoadConfig(wcfg(fc.TaskType)), consultations, sessions, catalog, log).Handle)
	start(lts.TaskType, lts.NewHandler(lts.LoadConfig(wcfg(lts.TaskType)), consultations, catalog, log).Handle)
	start(nmr.TaskType, nmr.NewHandler(nmr.LoadConfig(wcfg(nmr.TaskType), cfg.Notifications), publisher, mailer, log).Handle)

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: newServerMux(map[string]pinger{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("worker manager stopped gracefully", nil)
}
