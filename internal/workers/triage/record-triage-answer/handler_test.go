// internal/workers/triage/record-triage-answer/handler_test.go
package recordtriageanswer

import (
	"context"
	"testing"

	"salesops-workers/internal/common/config"
	apperrors "salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/session"
	"salesops-workers/internal/triage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const sessionID = "sess-1"

func newTestHandler(t *testing.T) (*Handler, *session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewStore(client, config.TriageConfig{SessionTTL: 600, SessionKeyPrefix: "triage:session:"})
	require.NoError(t, store.Save(context.Background(), sessionID, triage.TakeSnapshot(triage.State{})))

	h := NewHandler(LoadConfig(config.WorkerConfig{Timeout: 5000}), store, nil, logger.NewTestLogger(t))
	return h, store
}

func answer(q triage.Question, v string) *Input {
	return &Input{SessionID: sessionID, Question: string(q), Value: v}
}

func block(id string, checked bool) *Input {
	return &Input{SessionID: sessionID, BlockConditionID: id, Checked: &checked}
}

func mustRecord(t *testing.T, h *Handler, inputs ...*Input) *Output {
	t.Helper()
	var out *Output
	for _, in := range inputs {
		var err error
		out, err = h.Execute(context.Background(), in)
		require.NoError(t, err, "input %+v", in)
	}
	return out
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.Normalize(err).Code)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FirstAnswer(t *testing.T) {
	h, store := newTestHandler(t)

	out := mustRecord(t, h, answer(triage.QuestionBusinessType, "food"))

	assert.Equal(t, sessionID, out.SessionID)
	assert.Equal(t, triage.StatusIncomplete, out.Evaluation.Status)
	assert.Equal(t, triage.QuestionStoreType, out.Evaluation.NextQuestion)

	snap, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, snap.BusinessType)
	assert.Equal(t, triage.BusinessFood, *snap.BusinessType)
}

func TestHandler_Execute_NewStoreRecommendation(t *testing.T) {
	h, _ := newTestHandler(t)

	out := mustRecord(t, h,
		answer(triage.QuestionBusinessType, "food"),
		answer(triage.QuestionStoreType, "new"),
		answer(triage.QuestionUsesDelivery, "yes"),
	)

	assert.Equal(t, triage.StatusRecommended, out.Evaluation.Status)
	require.NotNil(t, out.Evaluation.Outcome)
	assert.Equal(t, triage.NewDelivery, *out.Evaluation.Outcome)
	assert.True(t, out.Evaluation.Complete)
	require.NotNil(t, out.Snapshot.Outcome)
	assert.Equal(t, triage.NewDelivery, *out.Snapshot.Outcome)
}

func TestHandler_Execute_ChangingAnswerCascades(t *testing.T) {
	h, store := newTestHandler(t)

	mustRecord(t, h,
		answer(triage.QuestionBusinessType, "food"),
		answer(triage.QuestionStoreType, "new"),
		answer(triage.QuestionUsesDelivery, "no"),
	)
	out := mustRecord(t, h, answer(triage.QuestionStoreType, "existing"))

	assert.Equal(t, triage.QuestionContractCleared, out.Evaluation.NextQuestion)
	snap, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, snap.UsesDelivery)
}

func TestHandler_Execute_BlockConditionSuspendsAndResumes(t *testing.T) {
	h, _ := newTestHandler(t)

	mustRecord(t, h, answer(triage.QuestionBusinessType, "food"))

	out := mustRecord(t, h, &Input{SessionID: sessionID, BlockConditionID: "device_mac_pos"})
	assert.Equal(t, triage.StatusBlocked, out.Evaluation.Status)
	assert.Equal(t, []string{"device_mac_pos"}, out.Snapshot.BlockedConditionIDs)

	_, err := h.Execute(context.Background(), answer(triage.QuestionStoreType, "new"))
	assertCode(t, err, apperrors.ErrCodeTriageAnswerRejected)

	out = mustRecord(t, h, block("device_mac_pos", false))
	assert.Equal(t, triage.StatusIncomplete, out.Evaluation.Status)
	assert.Equal(t, triage.QuestionStoreType, out.Evaluation.NextQuestion)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_RejectedAnswers(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"hidden question", answer(triage.QuestionUsesDelivery, "yes")},
		{"invalid value", answer(triage.QuestionBusinessType, "retail")},
		{"unknown question", answer("favouriteColour", "blue")},
		{"unknown block condition", block("service_unknown", true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			_, err := h.Execute(context.Background(), tt.input)

			assertCode(t, err, apperrors.ErrCodeTriageAnswerRejected)
			assert.Equal(t, sessionID, apperrors.Normalize(err).Metadata["sessionId"])
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"missing session", &Input{Question: "businessType", Value: "food"}},
		{"no event", &Input{SessionID: sessionID}},
		{"both events", &Input{SessionID: sessionID, Question: "businessType", BlockConditionID: "device_mac_pos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			_, err := h.Execute(context.Background(), tt.input)
			assertCode(t, err, apperrors.ErrCodeTriageInputInvalid)
		})
	}
}

func TestHandler_Execute_UnknownSession(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{SessionID: "expired", Question: "businessType", Value: "food"})

	assertCode(t, err, apperrors.ErrCodeTriageSessionNotFound)
	assert.False(t, apperrors.Normalize(err).Retryable)
}

func TestHandler_Execute_RejectedAnswerLeavesSessionUntouched(t *testing.T) {
	h, store := newTestHandler(t)
	mustRecord(t, h, answer(triage.QuestionBusinessType, "food"))

	_, err := h.Execute(context.Background(), answer(triage.QuestionPosPlatform, "android"))
	require.Error(t, err)

	snap, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, snap.CurrentPosPlatform)
	require.NotNil(t, snap.BusinessType)
}
