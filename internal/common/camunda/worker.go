// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"salesops-workers/internal/common/config"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusThrown    = "error_thrown"
	StatusAbandoned = "abandoned"
)

// StartWorker opens a job worker for taskType with instrumentation around
// handler.
func StartWorker(
	client zbc.Client,
	taskType string,
	cfg config.WorkerConfig,
	handler worker.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) worker.JobWorker {
	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs)).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Name(taskType).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": cfg.MaxJobsActive,
		"timeoutMs":     cfg.Timeout,
	})
	return jw
}

// Instrument wraps handler so every job updates the active gauge, the
// duration histogram and the OpenTelemetry job instruments. The job status is
// taken from the command the handler issues.
func Instrument(taskType string, handler worker.JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		rc := &recordingClient{JobClient: client}
		start := time.Now()
		handler(rc, job)
		elapsed := time.Since(start)

		status := rc.Status()
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		obs.RecordJobProcessed(context.Background(), taskType, status)
		obs.RecordJobDuration(context.Background(), taskType, elapsed, status)
	}
}

// recordingClient notes which terminal command a handler requested.
type recordingClient struct {
	worker.JobClient

	mu     sync.Mutex
	status string
}

func (r *recordingClient) set(status string) {
	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
}

func (r *recordingClient) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == "" {
		return StatusAbandoned
	}
	return r.status
}

func (r *recordingClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	r.set(StatusCompleted)
	return r.JobClient.NewCompleteJobCommand()
}

func (r *recordingClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	r.set(StatusFailed)
	return r.JobClient.NewFailJobCommand()
}

func (r *recordingClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	r.set(StatusThrown)
	return r.JobClient.NewThrowErrorCommand()
}
