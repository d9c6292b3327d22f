// internal/workers/generation/analyze-complexity/config.go
package analyzecomplexity

import "time"

type Config struct {
	Timeout time.Duration
	Enabled bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Enabled: true,
	}
}
