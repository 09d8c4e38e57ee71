// internal/workers/consultation/file-consultation/config.go
package fileconsultation

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
