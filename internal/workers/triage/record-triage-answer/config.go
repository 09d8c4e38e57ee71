// internal/workers/triage/record-triage-answer/config.go
package recordtriageanswer

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
