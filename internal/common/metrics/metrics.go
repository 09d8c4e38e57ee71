// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	TriageEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_evaluations_total",
			Help: "Triage evaluations by render status and recommendation",
		},
		[]string{"status", "outcome"},
	)

	ConsultationsFiled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consultations_filed_total",
			Help: "Consultations filed, split by whether a triage snapshot was attached",
		},
		[]string{"with_triage"},
	)

	ReviewNotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_notifications_sent_total",
			Help: "Manual review notifications sent per channel",
		},
		[]string{"channel"},
	)
)

func JobCompleted(taskType string) {
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
}

func JobFailed(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// TriageEvaluated counts one evaluation. A nil outcome is recorded as "none".
func TriageEvaluated[K ~string](status string, outcome *K) {
	o := "none"
	if outcome != nil {
		o = string(*outcome)
	}
	TriageEvaluations.WithLabelValues(status, o).Inc()
}

func ConsultationFiled(withTriage bool) {
	ConsultationsFiled.WithLabelValues(strconv.FormatBool(withTriage)).Inc()
}

func ReviewNotificationSent(channel string) {
	ReviewNotificationsSent.WithLabelValues(channel).Inc()
}
