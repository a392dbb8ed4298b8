package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRODSEARCH_"

// FileName is the default config file name inside the prodsearch directory.
const FileName = "config.toml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRatePerSec = 1.0
	DefaultRateBurst  = 10
	DefaultBackend    = BackendFile
	DefaultExporter   = "none"
)

// Config is the effective prodsearch configuration.
type Config struct {
	// BaseURL is the product API root.
	BaseURL string `toml:"base_url" env:"BASE_URL" validate:"required,url"`

	// Timeout bounds each HTTP request.
	Timeout Duration `toml:"timeout" env:"TIMEOUT" validate:"gt=0"`

	// IdentityLength is the length of newly generated client identifiers.
	IdentityLength int `toml:"identity_length" env:"IDENTITY_LENGTH" validate:"min=1,max=256"`

	RateLimit RateLimitConfig `toml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	Storage   StorageConfig   `toml:"storage" envPrefix:"STORAGE_"`
	Telemetry TelemetryConfig `toml:"telemetry" envPrefix:"TELEMETRY_"`

	// Path is the config file that was read, if any.
	Path string `toml:"-"`
}

// RateLimitConfig paces outgoing search requests.
type RateLimitConfig struct {
	PerSecond float64 `toml:"per_second" env:"PER_SECOND" validate:"gt=0"`
	Burst     int     `toml:"burst" env:"BURST" validate:"min=1"`
}

// StorageConfig selects where the client identifier is kept.
type StorageConfig struct {
	Backend string `toml:"backend" env:"BACKEND" validate:"oneof=file sqlite memory"`
	// Dir overrides the backend's default directory.
	Dir string `toml:"dir" env:"DIR"`
}

// TelemetryConfig selects the OpenTelemetry exporter.
type TelemetryConfig struct {
	Exporter string `toml:"exporter" env:"EXPORTER" validate:"oneof=none stdout otlp"`
	Insecure bool   `toml:"insecure" env:"INSECURE"`
}

// Duration is a time.Duration read from strings such as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration. BaseURL has no default.
func Default() *Config {
	return &Config{
		Timeout:        Duration(DefaultTimeout),
		IdentityLength: domain.DefaultIdentifierLength,
		RateLimit: RateLimitConfig{
			PerSecond: DefaultRatePerSec,
			Burst:     DefaultRateBurst,
		},
		Storage: StorageConfig{
			Backend: DefaultBackend,
		},
		Telemetry: TelemetryConfig{
			Exporter: DefaultExporter,
		},
	}
}

// Options controls where Load looks.
type Options struct {
	// ConfigPath is an explicit config file. It must exist when set.
	ConfigPath string

	// EnvFile is the dotenv file to read. Defaults to ".env"; a missing
	// file is ignored.
	EnvFile string
}

// DefaultPath returns ~/.prodsearch/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".prodsearch", FileName), nil
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if err := cfg.readFile(opts.ConfigPath); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(explicit string) error {
	path := explicit
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicit == "" {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	c.Path = path
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// describe renders a field error using the config key and env variable name.
func describe(fe validator.FieldError) string {
	key, ok := fieldKeys[fe.StructNamespace()]
	if !ok {
		key = fe.StructNamespace()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", key, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", key)
	default:
		return fmt.Sprintf("%s must satisfy %s=%s", key, fe.Tag(), fe.Param())
	}
}

var fieldKeys = map[string]string{
	"Config.BaseURL":             "base_url (" + EnvPrefix + "BASE_URL)",
	"Config.Timeout":             "timeout (" + EnvPrefix + "TIMEOUT)",
	"Config.IdentityLength":      "identity_length (" + EnvPrefix + "IDENTITY_LENGTH)",
	"Config.RateLimit.PerSecond": "rate_limit.per_second (" + EnvPrefix + "RATE_LIMIT_PER_SECOND)",
	"Config.RateLimit.Burst":     "rate_limit.burst (" + EnvPrefix + "RATE_LIMIT_BURST)",
	"Config.Storage.Backend":     "storage.backend (" + EnvPrefix + "STORAGE_BACKEND)",
	"Config.Telemetry.Exporter":  "telemetry.exporter (" + EnvPrefix + "TELEMETRY_EXPORTER)",
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
