// Package config loads the application configuration from an optional
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// PipelineConfig contains defaults for the cleaning pipeline.
type PipelineConfig struct {
	ImputeStrategy string   `yaml:"impute_strategy" envconfig:"IMPUTE_STRATEGY" validate:"oneof=mean median mode"`
	ExportFormats  []string `yaml:"export_formats" envconfig:"EXPORT_FORMATS" validate:"min=1,dive,oneof=csv excel json sql"`
	SQLiteDSN     string   `yaml:"sqlite_dsn" envconfig:"SQLITE_DSN" validate:"required"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/tabcli.log",
		},
		Paths: PathsConfig{
			DataDir:   "data",
			ExportDir: "exports",
			LogsDir:   "logs",
		},
		Pipeline: PipelineConfig{
			ImputeStrategy: "mean",
			ExportFormats:  []string{"csv"},
			SQLiteDSN:      "file::memory:?cache=shared",
		},
	}
}

// Load builds the configuration by layering, in order of precedence:
// built-in defaults, the YAML file at path (missing file is fine), then
// TABCLI_* environment variables. The merged result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("TABCLI", cfg); err != nil {
		return nil, fmt.Errorf("processing environment overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
