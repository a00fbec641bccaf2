package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Config holds runtime settings for the console.
//
// Fields:
//   - APIBaseURL: panel API root, requests are sent to APIBaseURL + path.
//   - Timeout: upper bound for a single API call.
//   - StorePath: SQLite file that keeps the session and branding cache.
//   - LogLevel, LogFormat: slog level (debug|info|warn|error) and handler (text|json).
//   - MetricsAddr: listen address of the /metrics endpoint, empty disables it.
type Config struct {
	APIBaseURL  string
	Timeout     time.Duration
	StorePath   string
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.Timeout = 10 * time.Second
	c.StorePath = "console.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.StorePath, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
