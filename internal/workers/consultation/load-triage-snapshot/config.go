// internal/workers/consultation/load-triage-snapshot/config.go
package loadtriagesnapshot

import (
	"time"

	"salesops-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wc config.WorkerConfig) *Config {
	return &Config{
		Timeout: config.GetDuration(wc.Timeout),
	}
}
