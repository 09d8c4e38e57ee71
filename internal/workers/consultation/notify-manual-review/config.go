// internal/workers/consultation/notify-manual-review/config.go
package notifymanualreview

import (
	"time"

	"salesops-workers/internal/common/config"
)

type Config struct {
	SNSEnabled bool
	SESEnabled bool
	ToEmails   []string
	Timeout    time.Duration
}

func LoadConfig(wc config.WorkerConfig, nc config.NotificationConfig) *Config {
	return &Config{
		SNSEnabled: nc.SNS.Enabled,
		SESEnabled: nc.SES.Enabled,
		ToEmails:   nc.SES.ToEmails,
		Timeout:    config.GetDuration(wc.Timeout),
	}
}
