package config

// Config is the root configuration for wagate. It is loaded once at
// startup and passed to constructors; nothing mutates it afterwards.
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Waha      WahaConfig      `yaml:"waha,omitempty"`
	Webhook   WebhookConfig   `yaml:"webhook,omitempty"`
	AutoReply AutoReplyConfig `yaml:"autoReply,omitempty"`
	Limits    LimitsConfig    `yaml:"limits,omitempty"`
	Store     StoreConfig     `yaml:"store,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerConfig controls the gateway HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	Debug          bool     `yaml:"debug,omitempty"` // include raw error details in responses
}

// WahaConfig describes the upstream WAHA server and its credentials.
type WahaConfig struct {
	URL            string `yaml:"url,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	APIKey         string `yaml:"apiKey,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
	DefaultSession string `yaml:"defaultSession,omitempty"`
	MockSeed       int64  `yaml:"mockSeed,omitempty"` // 0 = time-based
}

// WebhookConfig controls inbound webhook validation.
type WebhookConfig struct {
	Secret      string `yaml:"secret,omitempty"`      // empty disables signature enforcement
	VerifyToken string `yaml:"verifyToken,omitempty"` // challenge handshake token
}

// AutoReplyConfig controls the keyword auto-responder.
type AutoReplyConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	DelayMs int  `yaml:"delayMs,omitempty"`
}

// LimitsConfig bounds pagination parameters.
type LimitsConfig struct {
	DefaultLimit int `yaml:"defaultLimit,omitempty"`
	MaxLimit     int `yaml:"maxLimit,omitempty"`
}

// StoreConfig controls the analytics store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}
