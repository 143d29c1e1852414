package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	// EnvAPIBaseURL overrides [APIConfig.BaseURL].
	EnvAPIBaseURL = "SHOWTIME_API_BASE_URL"
	// EnvAPITimeout overrides [APIConfig.TimeoutMS], in milliseconds.
	EnvAPITimeout = "SHOWTIME_API_TIMEOUT"

	defaultBaseURL   = "http://localhost:8080"
	defaultTimeoutMS = 10000
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Booking  BookingConfig  `toml:"booking"`
	Session  SessionConfig  `toml:"session"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

// APIConfig contains connection settings for the remote booking API.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	TimeoutMS int     `toml:"timeout_ms"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables throttling
}

// Timeout returns the overall request timeout, falling back to 10s when unset.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return defaultTimeoutMS * time.Millisecond
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// BookingConfig contains client-side booking defaults.
type BookingConfig struct {
	PricePerSeat int64  `toml:"price_per_seat"`
	Currency     string `toml:"currency"`
}

// Price returns the configured per-seat price as a decimal.
func (c BookingConfig) Price() decimal.Decimal {
	return decimal.NewFromInt(c.PricePerSeat)
}

// SessionConfig selects where the session identity is persisted.
type SessionConfig struct {
	Driver string `toml:"driver"` // sqlite or file
	Path   string `toml:"path"`   // file driver only
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // log destination while the TUI owns the terminal
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides API settings from the environment.
//
// A blank base URL or a timeout that is not a positive integer falls back to the built-in default.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIBaseURL); ok {
		if v = strings.TrimSpace(v); v != "" {
			c.API.BaseURL = v
		}
	}
	if v, ok := lookup(EnvAPITimeout); ok {
		if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && ms > 0 {
			c.API.TimeoutMS = ms
		} else {
			c.API.TimeoutMS = defaultTimeoutMS
		}
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.TimeoutMS <= 0 {
		c.API.TimeoutMS = defaultTimeoutMS
	}
}
