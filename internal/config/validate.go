package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 1-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}

	if cfg.Waha.URL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "waha.url",
			Message: "url is required",
		})
	} else if u, err := url.Parse(cfg.Waha.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		issues = append(issues, ValidationIssue{
			Path:    "waha.url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.Waha.URL),
		})
	}

	if cfg.Waha.TimeoutSeconds < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "waha.timeoutSeconds",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Waha.TimeoutSeconds),
		})
	}

	if cfg.Limits.DefaultLimit < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "limits.defaultLimit",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Limits.DefaultLimit),
		})
	}
	if cfg.Limits.MaxLimit < cfg.Limits.DefaultLimit {
		issues = append(issues, ValidationIssue{
			Path:    "limits.maxLimit",
			Message: fmt.Sprintf("must be >= defaultLimit (%d), got %d", cfg.Limits.DefaultLimit, cfg.Limits.MaxLimit),
		})
	}

	if cfg.AutoReply.DelayMs < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "autoReply.delayMs",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.AutoReply.DelayMs),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"pretty", "json"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	return issues
}
