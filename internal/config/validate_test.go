package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad bind", func(c *Config) { c.Server.Bind = "tailnet" }, "server.bind"},
		{"missing url", func(c *Config) { c.Waha.URL = "" }, "waha.url"},
		{"relative url", func(c *Config) { c.Waha.URL = "localhost:3000" }, "waha.url"},
		{"bad scheme", func(c *Config) { c.Waha.URL = "ftp://waha" }, "waha.url"},
		{"zero timeout", func(c *Config) { c.Waha.TimeoutSeconds = 0 }, "waha.timeoutSeconds"},
		{"zero default limit", func(c *Config) { c.Limits.DefaultLimit = 0 }, "limits.defaultLimit"},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 10 }, "limits.maxLimit"},
		{"negative delay", func(c *Config) { c.AutoReply.DelayMs = -1 }, "autoReply.delayMs"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad style", func(c *Config) { c.Logging.Style = "compact" }, "logging.style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			issues := Validate(&cfg)
			assert.NotEmpty(t, issues)

			found := false
			for _, issue := range issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			assert.True(t, found, "expected issue at %s, got %v", tt.path, issues)
		})
	}
}
