// internal/workers/college-data/search-colleges/config.go
package searchcolleges

import "time"

type Config struct {
	Index   string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "colleges",
		Timeout: 30 * time.Second,
	}
}
