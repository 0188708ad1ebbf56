package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/roster/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "roster.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ROSTER_"

	// DefaultPort is the default HTTP port.
	DefaultPort = 8080

	// DefaultHost is the default bind host.
	DefaultHost = "localhost"

	// DefaultIdleTimeout is how long an untouched session survives.
	DefaultIdleTimeout = "30m"

	// DefaultSweepInterval is how often idle sessions are evicted.
	DefaultSweepInterval = "1m"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete roster.json configuration.
type Config struct {
	// Name is the application name, used for logs and tracing.
	Name string `json:"name,omitempty"`

	// Host is the interface the HTTP server binds to.
	Host string `json:"host,omitempty" env:"HOST"`

	// Port is the HTTP server port.
	Port int `json:"port,omitempty" env:"PORT"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" envPrefix:"LOG_"`

	// Session contains session lifetime configuration.
	Session SessionConfig `json:"session,omitempty" envPrefix:"SESSION_"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" envPrefix:"METRICS_"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty" envPrefix:"TRACING_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" env:"FORMAT"`
}

// SessionConfig contains session settings.
type SessionConfig struct {
	// IdleTimeout is the duration after which an unused session is dropped (e.g., "30m").
	IdleTimeout string `json:"idleTimeout,omitempty" env:"IDLE_TIMEOUT"`

	// SweepInterval is how often idle sessions are looked for (e.g., "1m").
	SweepInterval string `json:"sweepInterval,omitempty" env:"SWEEP_INTERVAL"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint and records navigation metrics.
	Enabled bool `json:"enabled,omitempty" env:"ENABLED"`

	// Path is the metrics endpoint path.
	Path string `json:"path,omitempty" env:"PATH"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps every navigation in a span.
	Enabled bool `json:"enabled,omitempty" env:"ENABLED"`

	// TracerName is the name passed to otel.Tracer.
	TracerName string `json:"tracerName,omitempty" env:"TRACER_NAME"`

	// Endpoint is the OTLP/HTTP collector URL. When empty, spans are
	// recorded against the global provider and never exported.
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "roster",
		Host: DefaultHost,
		Port: DefaultPort,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			IdleTimeout:   DefaultIdleTimeout,
			SweepInterval: DefaultSweepInterval,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: "roster",
		},
	}
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E200").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create the file or run without --config to use defaults")
		}
		return nil, errors.FromError(err, "E200")
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E201").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the file at path
// (skipped when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values from ROSTER_* environment variables. Unset
// variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	return c.applyEnvOptions(env.Options{Prefix: EnvPrefix})
}

func (c *Config) applyEnvOptions(opts env.Options) error {
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.FromError(err, "E205")
	}
	c.applyDefaults()
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "roster"
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = DefaultIdleTimeout
	}
	if c.Session.SweepInterval == "" {
		c.Session.SweepInterval = DefaultSweepInterval
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = c.Name
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("E202").
			WithDetailf("Port must be between 0 and 65535, got %d", c.Port)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Newf(errors.CategoryConfig, "unknown log format %q", c.Log.Format).
			WithSuggestion(`Use "text" or "json"`)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	if _, err := c.SweepInterval(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.Newf(errors.CategoryConfig, "metrics path %q must start with /", c.Metrics.Path)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Address())
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E203").
			WithDetailf("Log level must be one of debug, info, warn or error, got %q", c.Log.Level)
	}
	return level, nil
}

// IdleTimeout parses Session.IdleTimeout.
func (c *Config) IdleTimeout() (time.Duration, error) {
	return parseDuration("session.idleTimeout", c.Session.IdleTimeout)
}

// SweepInterval parses Session.SweepInterval.
func (c *Config) SweepInterval() (time.Duration, error) {
	return parseDuration("session.sweepInterval", c.Session.SweepInterval)
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, errors.New("E204").
			WithDetailf("%s must be a positive duration, got %q", field, value)
	}
	return d, nil
}
