// internal/workers/triage/check-van-compatibility/handler_test.go
package checkvancompatibility

import (
	"context"
	"testing"

	"salesops-workers/internal/common/config"
	apperrors "salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(config.WorkerConfig{Timeout: 5000}), nil, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name               string
		input              *Input
		wantStatus         triage.CompatibilityStatus
		wantVanCompatible  bool
		wantTermCompatible bool
		wantTerminals      []string
	}{
		{
			name:       "picker lists only",
			input:      &Input{},
			wantStatus: triage.CompatibilityVanPending,
		},
		{
			name:       "known incompatible van",
			input:      &Input{Van: "KOCES"},
			wantStatus: triage.CompatibilityVanIncompatible,
		},
		{
			name:       "unlisted van",
			input:      &Input{Van: "ACME"},
			wantStatus: triage.CompatibilityVanIncompatible,
		},
		{
			name:              "compatible van",
			input:             &Input{Van: "nice"},
			wantStatus:        triage.CompatibilityTerminalPending,
			wantVanCompatible: true,
			wantTerminals:     []string{"NICE-R1", "NI-3000"},
		},
		{
			name:               "compatible terminal",
			input:              &Input{Van: "SMARTRO", Terminal: "SMT-Q453"},
			wantStatus:         triage.CompatibilityCompatible,
			wantVanCompatible:  true,
			wantTermCompatible: true,
			wantTerminals:      []string{"SMT-T280", "SMT-Q453"},
		},
		{
			name:              "terminal swap",
			input:             &Input{Van: "KIS", Terminal: "ED-785"},
			wantStatus:        triage.CompatibilitySwapRequired,
			wantVanCompatible: true,
			wantTerminals:     []string{"KIS-2100", "KIS-N5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newTestHandler(t).Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, out.Compatibility.Status)
			assert.Equal(t, tt.wantVanCompatible, out.VanCompatible)
			assert.Equal(t, tt.wantTermCompatible, out.TerminalCompatible)
			if tt.wantTerminals != nil {
				assert.Equal(t, tt.wantTerminals, out.Compatibility.SupportedTerminals)
			}
			assert.Contains(t, out.CompatibleVans, "KICC")
			assert.Contains(t, out.IncompatibleVans, "KSNET")
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{"terminal without van", &Input{Terminal: "TS-114A"}, apperrors.ErrCodeTriageInputInvalid},
		{"terminal for incompatible van", &Input{Van: "KSNET", Terminal: "TS-114A"}, apperrors.ErrCodeTriageAnswerRejected},
		{"blank van", &Input{Van: "  "}, apperrors.ErrCodeTriageAnswerRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestHandler(t).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.Normalize(err).Code)
		})
	}
}
