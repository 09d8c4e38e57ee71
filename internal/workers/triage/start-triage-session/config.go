// internal/workers/triage/start-triage-session/config.go
package starttriagesession

import (
	"time"

	"salesops-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	SessionTTL time.Duration
}

func LoadConfig(wc config.WorkerConfig, tc config.TriageConfig) *Config {
	return &Config{
		Timeout:    config.GetDuration(wc.Timeout),
		SessionTTL: tc.TTL(),
	}
}
