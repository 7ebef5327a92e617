// Package config loads CLI settings from a JSON or YAML file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable except GEMINI_API_KEY
const EnvPrefix = "RESUME_TAILOR"

// Config holds every setting of a run. All fields are optional in a file;
// missing values come from the environment, CLI flags or Defaults.
// Environment names are RESUME_TAILOR_<FIELD_NAME>; only APIKey also reads an unprefixed variable.
type Config struct {
	// Paths
	Job          string `json:"job,omitempty" yaml:"job,omitempty" split_words:"true" validate:"required"`
	TemplatesDir string `json:"templates_dir,omitempty" yaml:"templates_dir,omitempty" split_words:"true" validate:"required"`
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" split_words:"true"`
	HistoryURL   string `json:"history_url,omitempty" yaml:"history_url,omitempty" split_words:"true"`

	// Rewrite service
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty" envconfig:"GEMINI_API_KEY"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty" split_words:"true" validate:"required"`
	MaxRetries *int   `json:"max_retries,omitempty" yaml:"max_retries,omitempty" split_words:"true" validate:"omitempty,gte=0,lte=10"`

	// Compilation
	Compiler       string   `json:"compiler,omitempty" yaml:"compiler,omitempty" split_words:"true" validate:"required"`
	CompileTimeout Duration `json:"compile_timeout,omitempty" yaml:"compile_timeout,omitempty" split_words:"true"`
	MaxPages       int      `json:"max_pages,omitempty" yaml:"max_pages,omitempty" split_words:"true" validate:"gte=0"`

	// Behavior
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" split_words:"true" validate:"omitempty,oneof=debug info warn error"`
	Verbose  bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" split_words:"true"`
}

// Defaults returns the settings used when nothing else is provided
func Defaults() Config {
	retries := 2
	return Config{
		Job:            "docs/job_description.txt",
		TemplatesDir:   "latex/resume",
		HistoryURL:     "output/history.db",
		Model:          "gemini-2.5-flash",
		MaxRetries:     &retries,
		Compiler:       "pdflatex",
		CompileTimeout: Seconds(60),
		LogLevel:       "warn",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML for .yaml/.yml files.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads RESUME_TAILOR_* variables, and GEMINI_API_KEY for the credential.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// Load resolves the effective configuration. Precedence, highest first:
// flags, environment, the config file at path (optional), Defaults.
func Load(path string, flags Config) (*Config, error) {
	merged := Defaults()

	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = file.MergeWithDefaults(merged)
	}

	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	merged = env.MergeWithDefaults(merged)
	merged = flags.MergeWithDefaults(merged)

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks field ranges and required settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.CompileTimeout.Duration < 0 {
		return fmt.Errorf("config error: 'compile_timeout' must be non-negative")
	}
	return nil
}

// Retries returns MaxRetries, or 0 when unset
func (c *Config) Retries() int {
	if c.MaxRetries == nil {
		return 0
	}
	return *c.MaxRetries
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.HistoryURL == "" {
		result.HistoryURL = defaults.HistoryURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Compiler == "" {
		result.Compiler = defaults.Compiler
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	if result.MaxRetries == nil {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.CompileTimeout.Duration == 0 {
		result.CompileTimeout = defaults.CompileTimeout
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}

	// false cannot be told apart from unset, so true anywhere wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
