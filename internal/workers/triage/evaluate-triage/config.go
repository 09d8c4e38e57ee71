// internal/workers/triage/evaluate-triage/config.go
package evaluatetriage

import (
	"time"

	"salesops-workers/internal/common/config"
)

// No storage involved, only the job timeout is configurable.
type Config struct {
	Timeout time.Duration
}

func LoadConfig(wc config.WorkerConfig) *Config {
	return &Config{
		Timeout: config.GetDuration(wc.Timeout),
	}
}
