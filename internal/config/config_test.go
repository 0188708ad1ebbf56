package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/roster/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFile(filepath.Join(tmpDir, ConfigFileName))
	if !errors.HasCode(err, "E200") {
		t.Errorf("missing file err = %v, want E200", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "host": "0.0.0.0",
  "port": 9090,
  "log": {"level": "debug", "format": "json"},
  "session": {"idleTimeout": "5m"},
  "metrics": {"enabled": false},
  "tracing": {"enabled": true}
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if d, _ := cfg.IdleTimeout(); d != 5*time.Minute {
		t.Errorf("IdleTimeout = %v", d)
	}
	// Unspecified fields keep their defaults.
	if cfg.Session.SweepInterval != DefaultSweepInterval {
		t.Errorf("SweepInterval = %q", cfg.Session.SweepInterval)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != "roster" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadFileUnreadable(t *testing.T) {
	// A directory exists but cannot be read as a file.
	dir := t.TempDir()
	_, err := LoadFile(dir)
	if !errors.HasCode(err, "E200") {
		t.Fatalf("err = %v, want E200", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Wrapped == nil {
		t.Errorf("E200 should wrap the read error, got %+v", err)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.HasCode(err, "E201") {
		t.Errorf("err = %v, want E201", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := New()
	err := cfg.applyEnvOptions(env.Options{
		Prefix: EnvPrefix,
		Environment: map[string]string{
			"ROSTER_PORT":                 "7000",
			"ROSTER_LOG_LEVEL":            "warn",
			"ROSTER_SESSION_IDLE_TIMEOUT": "90s",
			"ROSTER_METRICS_ENABLED":      "false",
			"ROSTER_TRACING_TRACER_NAME":  "roster-test",
			"ROSTER_TRACING_ENDPOINT":     "http://collector:4318",
		},
	})
	if err != nil {
		t.Fatalf("applyEnvOptions: %v", err)
	}

	if cfg.Port != 7000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelWarn {
		t.Errorf("LogLevel = %v", level)
	}
	if d, _ := cfg.IdleTimeout(); d != 90*time.Second {
		t.Errorf("IdleTimeout = %v", d)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
	if cfg.Tracing.TracerName != "roster-test" {
		t.Errorf("TracerName = %q", cfg.Tracing.TracerName)
	}
	if cfg.Tracing.Endpoint != "http://collector:4318" {
		t.Errorf("Endpoint = %q", cfg.Tracing.Endpoint)
	}
	// Untouched values survive.
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q", cfg.Host)
	}
}

func TestEnvOverridesInvalid(t *testing.T) {
	cfg := New()
	err := cfg.applyEnvOptions(env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{"ROSTER_PORT": "eighty"},
	})
	if !errors.HasCode(err, "E205") {
		t.Errorf("err = %v, want E205", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"port too high", func(c *Config) { c.Port = 70000 }, "E202"},
		{"negative port", func(c *Config) { c.Port = -1 }, "E202"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "E203"},
		{"bad idle timeout", func(c *Config) { c.Session.IdleTimeout = "soon" }, "E204"},
		{"zero sweep", func(c *Config) { c.Session.SweepInterval = "0s" }, "E204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.HasCode(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}

	cfg := New()
	cfg.Log.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log format should fail validation")
	}

	cfg = New()
	cfg.Metrics.Path = "metrics"
	if err := cfg.Validate(); err == nil {
		t.Error("relative metrics path should fail validation")
	}
}

func TestURL(t *testing.T) {
	cfg := New()
	if got, want := cfg.URL(), "http://localhost:8080"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
