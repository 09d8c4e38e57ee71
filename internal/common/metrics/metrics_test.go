package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTriageEvaluated(t *testing.T) {
	outcome := "new_delivery"
	before := testutil.ToFloat64(TriageEvaluations.WithLabelValues("recommended", outcome))
	beforeNone := testutil.ToFloat64(TriageEvaluations.WithLabelValues("incomplete", "none"))

	TriageEvaluated("recommended", &outcome)
	TriageEvaluated[string]("incomplete", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(TriageEvaluations.WithLabelValues("recommended", outcome)))
	assert.Equal(t, beforeNone+1, testutil.ToFloat64(TriageEvaluations.WithLabelValues("incomplete", "none")))
}

func TestConsultationFiled(t *testing.T) {
	before := testutil.ToFloat64(ConsultationsFiled.WithLabelValues("false"))

	ConsultationFiled(false)

	assert.Equal(t, before+1, testutil.ToFloat64(ConsultationsFiled.WithLabelValues("false")))
}

func TestJobCounters(t *testing.T) {
	before := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("evaluate-triage", "TRIAGE_INPUT_INVALID"))

	JobFailed("evaluate-triage", "TRIAGE_INPUT_INVALID")
	JobCompleted("evaluate-triage")
	ReviewNotificationSent("sns")

	assert.Equal(t, before+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("evaluate-triage", "TRIAGE_INPUT_INVALID")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("evaluate-triage")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(ReviewNotificationsSent.WithLabelValues("sns")), 1.0)
}
