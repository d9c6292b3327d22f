// internal/workers/generation/generate-resource/config.go
package generateresource

import "time"

type Config struct {
	Timeout        time.Duration
	Enabled        bool
	HistoryEnabled bool
	IndexEnabled   bool
	EmailEnabled   bool
	CRMEnabled     bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        120 * time.Second,
		Enabled:        true,
		HistoryEnabled: true,
		IndexEnabled:   true,
		EmailEnabled:   true,
		CRMEnabled:     true,
	}
}
