package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so passwords and tokens can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Waha.Username = expandEnvVars(cfg.Waha.Username)
	cfg.Waha.Password = expandEnvVars(cfg.Waha.Password)
	cfg.Waha.APIKey = expandEnvVars(cfg.Waha.APIKey)
	cfg.Webhook.Secret = expandEnvVars(cfg.Webhook.Secret)
	cfg.Webhook.VerifyToken = expandEnvVars(cfg.Webhook.VerifyToken)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults plus env overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = "loopback"
	}
	if cfg.Waha.URL == "" {
		cfg.Waha.URL = "http://localhost:3000"
	}
	if cfg.Waha.TimeoutSeconds == 0 {
		cfg.Waha.TimeoutSeconds = 30
	}
	if cfg.Waha.DefaultSession == "" {
		cfg.Waha.DefaultSession = "default"
	}
	if cfg.AutoReply.DelayMs == 0 {
		cfg.AutoReply.DelayMs = 1000
	}
	if cfg.Limits.DefaultLimit == 0 {
		cfg.Limits.DefaultLimit = 100
	}
	if cfg.Limits.MaxLimit == 0 {
		cfg.Limits.MaxLimit = 1000
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "wagate.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = "pretty"
	}
}

// applyEnvOverrides lets the WAHA_* and WAGATE_* environment variables
// override file values, so deployments can run without a config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WAHA_API_URL"); v != "" {
		cfg.Waha.URL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("WAHA_USERNAME"); v != "" {
		cfg.Waha.Username = v
	}
	if v := os.Getenv("WAHA_PASSWORD"); v != "" {
		cfg.Waha.Password = v
	}
	if v := os.Getenv("WAHA_API_KEY"); v != "" {
		cfg.Waha.APIKey = v
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.Secret = v
	}
	if v := os.Getenv("WEBHOOK_VERIFY_TOKEN"); v != "" {
		cfg.Webhook.VerifyToken = v
	}
	if v := os.Getenv("WAGATE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WAGATE_DEBUG"); v == "true" {
		cfg.Server.Debug = true
	}
	if v := os.Getenv("AUTO_RESPONSE_ENABLED"); v != "" {
		cfg.AutoReply.Enabled = v == "true"
	}
}
