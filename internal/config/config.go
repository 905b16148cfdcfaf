package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8000,
			Bind: "loopback",
		},
		Waha: WahaConfig{
			URL:            "http://localhost:3000",
			TimeoutSeconds: 30,
			DefaultSession: "default",
		},
		AutoReply: AutoReplyConfig{
			Enabled: true,
			DelayMs: 1000,
		},
		Limits: LimitsConfig{
			DefaultLimit: 100,
			MaxLimit:     1000,
		},
		Store: StoreConfig{
			Path: "wagate.db",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
	}
}
