package calculation

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes a session in a form that can be loaded from YAML or JSON.
//
//	vars:
//	  rate: 0.2
//	constants: true
//	precision: 128
//	symbols: true
//	history: ./history.db
//	log_level: debug
//	metrics: true
//	tracing: false
type Config struct {
	// Vars are initial variable values.
	Vars map[string]float64 `yaml:"vars" json:"vars"`
	// Constants seeds pi, e, ln2, and ln10.
	Constants bool `yaml:"constants" json:"constants"`
	// Precision is the number of bits to which constants are computed before
	// rounding to float64. Zero means the default.
	Precision uint `yaml:"precision" json:"precision"`
	// Symbols allows ×, ÷, and − in expressions.
	Symbols bool `yaml:"symbols" json:"symbols"`
	// History is the path of a SQLite history database, or empty for none.
	History string `yaml:"history" json:"history"`
	// LogLevel is debug, info, warn, or error. Empty means info.
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Metrics records OpenTelemetry metrics via the global meter provider.
	Metrics bool `yaml:"metrics" json:"metrics"`
	// Tracing creates spans via the global tracer provider.
	Tracing bool `yaml:"tracing" json:"tracing"`
}

// LoadConfig loads configuration from a file, detecting the format by
// extension. Supported extensions: .yaml, .yml, .json
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return ParseConfigYAML(data)
	case ".json":
		return ParseConfigJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// ParseConfigYAML parses YAML data into a Config.
func ParseConfigYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c, c.validate()
}

// ParseConfigJSON parses JSON data into a Config.
func ParseConfigJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	for name := range c.Vars {
		if !IsIdentifier(name) {
			return fmt.Errorf("invalid variable name %q", name)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Logger creates a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	l, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// Options converts the configuration into session options. If a history
// database is configured, it is opened here; the session that receives the
// options owns it.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Constants {
		opts = append(opts, Constants(c.Precision))
	}
	if len(c.Vars) > 0 {
		opts = append(opts, SetVars(c.Vars))
	}
	if c.Symbols {
		opts = append(opts, Symbols())
	}
	if c.Metrics {
		opts = append(opts, WithMetrics(NewMetricsRecorder()))
	}
	if c.Tracing {
		opts = append(opts, Tracing())
	}
	if c.History != "" {
		h, err := NewSQLiteHistory(c.History)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		opts = append(opts, WithHistory(h))
	}
	return opts, nil
}
