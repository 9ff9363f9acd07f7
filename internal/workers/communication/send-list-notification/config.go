// internal/workers/communication/send-list-notification/config.go
package sendlistnotification

import "time"

type Config struct {
	Timeout      time.Duration
	AWSRegion    string
	FromEmail    string
	EmailEnabled bool
	SMSEnabled   bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		AWSRegion:    "us-east-1",
		FromEmail:    "recommendations@collegematch.example.com",
		EmailEnabled: true,
		SMSEnabled:   false,
	}
}
