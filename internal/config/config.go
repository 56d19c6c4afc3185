package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kayz/google-search/internal/search"
	"github.com/kayz/google-search/internal/security"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey    = "GOOGLE_API_KEY"
	EnvEngineID  = "GOOGLE_SEARCH_ENGINE_ID"
	EnvBaseURL   = "GOOGLE_SEARCH_BASE_URL"
	EnvRateLimit = "GOOGLE_SEARCH_RATE_LIMIT"
	EnvTransport = "GOOGLE_SEARCH_TRANSPORT"
	EnvPort      = "GOOGLE_SEARCH_PORT"
	EnvLogLevel  = "GOOGLE_SEARCH_LOG_LEVEL"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Transport string          `yaml:"transport"` // "stdio", "sse" or "http"
	Port      int             `yaml:"port"`
	Google    GoogleConfig    `yaml:"google"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GoogleConfig holds the Custom Search credentials.
type GoogleConfig struct {
	APIKey         string `yaml:"api_key,omitempty"`
	EngineID       string `yaml:"engine_id,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RateLimitConfig struct {
	MaxPerMinute int `yaml:"max_per_minute"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ConfigError reports configuration that keeps the server from starting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

func DefaultConfig() *Config {
	return &Config{
		Transport: TransportStdio,
		Port:      8686,
		Google: GoogleConfig{
			BaseURL:        search.DefaultGoogleEndpoint,
			TimeoutSeconds: 30,
		},
		RateLimit: RateLimitConfig{
			MaxPerMinute: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	return filepath.Join(getExecutableDir(), ".google-search.yaml")
}

// Load reads the config next to the executable; a missing file yields defaults.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Variables that are
// already set win, and missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", filepath.Join(getExecutableDir(), ".env")}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides file values with environment values. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return &ConfigError{Field: key, Reason: fmt.Sprintf("must be an integer, got %q", v)}
		}
		*dst = n
		return nil
	}

	str(EnvAPIKey, &c.Google.APIKey)
	str(EnvEngineID, &c.Google.EngineID)
	str(EnvBaseURL, &c.Google.BaseURL)
	str(EnvTransport, &c.Transport)
	str(EnvLogLevel, &c.Logging.Level)
	if err := num(EnvRateLimit, &c.RateLimit.MaxPerMinute); err != nil {
		return err
	}
	return num(EnvPort, &c.Port)
}

// Validate checks everything the server needs before it opens a transport.
func (c *Config) Validate() error {
	var errs []error
	if c.Google.APIKey == "" {
		errs = append(errs, &ConfigError{Field: EnvAPIKey, Reason: "is required"})
	}
	if c.Google.EngineID == "" {
		errs = append(errs, &ConfigError{Field: EnvEngineID, Reason: "is required"})
	}
	if c.Google.BaseURL != "" {
		if err := security.ValidateEndpointURL(c.Google.BaseURL); err != nil {
			errs = append(errs, &ConfigError{Field: "google.base_url", Reason: err.Error()})
		}
	}
	if c.RateLimit.MaxPerMinute <= 0 {
		errs = append(errs, &ConfigError{Field: "rate_limit.max_per_minute", Reason: "must be positive"})
	}
	switch c.Transport {
	case TransportStdio:
	case TransportSSE, TransportHTTP:
		if c.Port <= 0 || c.Port > 65535 {
			errs = append(errs, &ConfigError{Field: "port", Reason: fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)})
		}
	default:
		errs = append(errs, &ConfigError{Field: "transport", Reason: fmt.Sprintf("must be stdio, sse or http, got %q", c.Transport)})
	}
	return errors.Join(errs...)
}

// Timeout is the outbound request timeout.
func (c *Config) Timeout() time.Duration {
	if c.Google.TimeoutSeconds <= 0 {
		return search.DefaultTimeout
	}
	return time.Duration(c.Google.TimeoutSeconds) * time.Second
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
