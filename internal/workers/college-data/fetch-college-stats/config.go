// internal/workers/college-data/fetch-college-stats/config.go
package fetchcollegestats

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
