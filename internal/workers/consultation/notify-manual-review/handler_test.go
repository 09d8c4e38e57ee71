// internal/workers/consultation/notify-manual-review/handler_test.go
package notifymanualreview

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject, message string, attrs map[string]string) (string, error) {
	args := m.Called(ctx, subject, message, attrs)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendText(ctx context.Context, to []string, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		SNSEnabled: true,
		SESEnabled: true,
		ToEmails:   []string{"review-desk@example.com"},
		Timeout:    5 * time.Second,
	}
}

func createTestInput(status triage.Status) *Input {
	outcome := triage.NeedCompatibilityCheck
	return &Input{
		ConsultationID: "c-1",
		StoreName:      "Seongsu Bakery",
		AgentID:        "agent-9",
		TriageStatus:   status,
		TriageOutcome:  &outcome,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_BothChannels(t *testing.T) {
	pub := new(MockPublisher)
	mail := new(MockMailer)

	pub.On("Publish", mock.Anything, "Manual review: Seongsu Bakery",
		mock.MatchedBy(func(body string) bool {
			var m reviewMessage
			return json.Unmarshal([]byte(body), &m) == nil &&
				m.ConsultationID == "c-1" &&
				m.TriageStatus == triage.StatusFollowUp &&
				m.NotificationID != ""
		}),
		map[string]string{
			"triageStatus":   "follow_up",
			"notificationId": notificationID("c-1", triage.StatusFollowUp),
		},
	).Return("sns-1", nil)
	mail.On("SendText", mock.Anything, []string{"review-desk@example.com"}, "Manual review: Seongsu Bakery",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "c-1") &&
				strings.Contains(body, "agent-9") &&
				strings.Contains(body, "need_compatibility_check")
		}),
	).Return("ses-1", nil)

	h := NewHandler(createTestConfig(), pub, mail, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createTestInput(triage.StatusFollowUp))

	require.NoError(t, err)
	assert.True(t, out.Notified)
	assert.Equal(t, []string{ChannelSNS, ChannelSES}, out.Channels)
	assert.Equal(t, "sns-1", out.SNSMessageID)
	assert.Equal(t, "ses-1", out.SESMessageID)
	assert.NotEmpty(t, out.NotificationID)
	pub.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestHandler_Execute_SkipsStatusesWithoutReview(t *testing.T) {
	for _, status := range []triage.Status{
		triage.StatusRecommended,
		triage.StatusIncomplete,
		triage.StatusBlocked,
		"",
	} {
		t.Run(string(status), func(t *testing.T) {
			pub := new(MockPublisher)
			mail := new(MockMailer)
			h := NewHandler(createTestConfig(), pub, mail, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), createTestInput(status))

			require.NoError(t, err)
			assert.False(t, out.Notified)
			assert.NotEmpty(t, out.SkippedReason)
			pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mail.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Execute_DisabledChannels(t *testing.T) {
	cfg := createTestConfig()
	cfg.SESEnabled = false

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("sns-1", nil)

	h := NewHandler(cfg, pub, nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createTestInput(triage.StatusManualReview))

	require.NoError(t, err)
	assert.Equal(t, []string{ChannelSNS}, out.Channels)

	cfg.SNSEnabled = false
	out, err = h.Execute(context.Background(), createTestInput(triage.StatusContractBlocked))
	require.NoError(t, err)
	assert.False(t, out.Notified)
	assert.Equal(t, "no notification channel enabled", out.SkippedReason)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_PublishFailure(t *testing.T) {
	pub := new(MockPublisher)
	mail := new(MockMailer)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("throttled"))

	h := NewHandler(createTestConfig(), pub, mail, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), createTestInput(triage.StatusManualReview))

	require.Error(t, err)
	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	mail.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_MailFailure(t *testing.T) {
	pub := new(MockPublisher)
	mail := new(MockMailer)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("sns-1", nil)
	mail.On("SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("MessageRejected"))

	h := NewHandler(createTestConfig(), pub, mail, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), createTestInput(triage.StatusFollowUp))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, apperrors.Normalize(err).Code)
}

func TestHandler_Execute_RetryPublishesSameNotificationID(t *testing.T) {
	pub := new(MockPublisher)
	mail := new(MockMailer)
	var ids []string
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ids = append(ids, args.Get(3).(map[string]string)["notificationId"])
		}).
		Return("sns-1", nil)
	mail.On("SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("MessageRejected")).Once()
	mail.On("SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("ses-1", nil).Once()

	h := NewHandler(createTestConfig(), pub, mail, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), createTestInput(triage.StatusFollowUp))
	require.Error(t, err)

	out, err := h.Execute(context.Background(), createTestInput(triage.StatusFollowUp))
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, out.NotificationID, ids[0])
}

func TestNotificationID(t *testing.T) {
	a := notificationID("c-1", triage.StatusFollowUp)

	assert.Equal(t, a, notificationID("c-1", triage.StatusFollowUp))
	assert.NotEqual(t, a, notificationID("c-2", triage.StatusFollowUp))
	assert.NotEqual(t, a, notificationID("c-1", triage.StatusManualReview))
}

func TestHandler_Execute_MissingConsultationID(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
	input := createTestInput(triage.StatusManualReview)
	input.ConsultationID = ""

	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConsultationValidationFailed, apperrors.Normalize(err).Code)
}

func TestReviewReason(t *testing.T) {
	for _, s := range []triage.Status{triage.StatusManualReview, triage.StatusContractBlocked, triage.StatusFollowUp} {
		assert.NotEqual(t, string(s), reviewReason(s))
	}
}
