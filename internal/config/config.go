// Package config loads, validates and merges the esgcalc YAML configuration and
// turns its table sections into calculator inputs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine/batch"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

// Environment variables read by esgcalc.
const (
	EnvConfig     = "ESGCALC_CONFIG"
	EnvHome       = "ESGCALC_HOME"
	EnvLogLevel   = "ESGCALC_LOG_LEVEL"
	EnvLogFormat  = "ESGCALC_LOG_FORMAT"
	EnvGWPTable   = "ESGCALC_GWP_TABLE"
	EnvProjectDir = "ESGCALC_PROJECT_DIR"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const (
	dirName        = ".esgcalc"
	fileName       = "config.yaml"
	configFilePerm = 0o600
	configDirPerm  = 0o750

	defaultPrecision   = 2
	maxPrecision       = 10
	defaultConcurrency = 4
	defaultBatchSize   = 100
)

// Config validation errors. Each is reported wrapped in calcerr.ErrConfiguration.
var (
	ErrInvalidOutputFormat = errors.New("output format must be table, json or ndjson")
	ErrPrecisionOutOfRange = errors.New("output precision must be between 0 and 10")
	ErrInvalidLogFormat    = errors.New("log format must be console or json")
	ErrInvalidConcurrency  = errors.New("batch concurrency must be at least 1")
	ErrInvalidBatchSize    = errors.New("batch size must be between 1 and 1000")
)

// Config is the full esgcalc configuration.
type Config struct {
	Logging      LoggingConfig           `yaml:"logging"      json:"logging"`
	Output       OutputConfig            `yaml:"output"       json:"output"`
	GWP          GWPConfig               `yaml:"gwp"          json:"gwp"`
	Safety       SafetyConfig            `yaml:"safety"       json:"safety"`
	Significance SignificanceConfig      `yaml:"significance" json:"significance"`
	Factors      map[string]FactorConfig `yaml:"factors"      json:"factors"`
	Batch        BatchConfig             `yaml:"batch"        json:"batch"`
	Metrics      MetricsConfig           `yaml:"metrics"      json:"metrics"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	// Precision is the number of decimals used for rates and percentages in tables.
	Precision int `yaml:"precision" json:"precision"`
}

// BatchConfig controls batch evaluation.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" json:"concurrency"`
	BatchSize   int `yaml:"batch_size"  json:"batch_size"`
}

// MetricsConfig controls Prometheus metric export.
type MetricsConfig struct {
	// Textfile is a node_exporter textfile path written after batch runs. Empty disables it.
	Textfile string `yaml:"textfile,omitempty" json:"textfile,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Audit:  AuditConfig{File: filepath.Join(Dir(), "logs", "audit.log")},
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		GWP: GWPConfig{
			DefaultTable: greenops.DefaultTableName,
		},
		Safety:       defaultSafetyConfig(),
		Significance: defaultSignificanceConfig(),
		Factors:      map[string]FactorConfig{},
		Batch: BatchConfig{
			Concurrency: defaultConcurrency,
			BatchSize:   defaultBatchSize,
		},
	}
}

// Dir returns the esgcalc home directory: $ESGCALC_HOME, else ~/.esgcalc.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(userHome, dirName)
}

// DefaultPath returns the global config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// ResolvePath picks the config file: flagValue, then $ESGCALC_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return DefaultPath()
}

// Load reads path over the defaults, applies environment overrides and validates.
// A missing file is not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", calcerr.ErrConfiguration, path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("%w: reading %s: %w", calcerr.ErrConfiguration, path, err)
	}

	cfg.ApplyEnvOverrides()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies ESGCALC_LOG_LEVEL, ESGCALC_LOG_FORMAT and ESGCALC_GWP_TABLE.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvGWPTable); v != "" {
		c.GWP.DefaultTable = v
	}
}

// Validate checks every section, including that the table sections build valid
// calculator tables.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return configErr(ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return configErr(ErrPrecisionOutOfRange, c.Output.Precision)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json", "text", "":
	default:
		return configErr(ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Batch.Concurrency < 1 {
		return configErr(ErrInvalidConcurrency, c.Batch.Concurrency)
	}
	if c.Batch.BatchSize < batch.MinBatchSize || c.Batch.BatchSize > batch.MaxBatchSize {
		return configErr(ErrInvalidBatchSize, c.Batch.BatchSize)
	}

	if _, err := c.GWP.TableSet(); err != nil {
		return err
	}
	if _, err := c.Safety.Calculator(); err != nil {
		return err
	}
	if _, err := c.Significance.ScoringTables(); err != nil {
		return err
	}
	if _, err := c.FactorRegistry(); err != nil {
		return err
	}
	return nil
}

func configErr(sentinel error, got any) error {
	return fmt.Errorf("%w: %w: got %v", calcerr.ErrConfiguration, sentinel, got)
}

