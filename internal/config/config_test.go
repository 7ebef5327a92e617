package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the loader reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "RESUME_TAILOR_GEMINI_API_KEY", "RESUME_TAILOR_JOB", "RESUME_TAILOR_TEMPLATES_DIR",
		"RESUME_TAILOR_OUTPUT_DIR", "RESUME_TAILOR_HISTORY_URL", "RESUME_TAILOR_MODEL", "RESUME_TAILOR_MAX_RETRIES",
		"RESUME_TAILOR_COMPILER", "RESUME_TAILOR_COMPILE_TIMEOUT", "RESUME_TAILOR_MAX_PAGES",
		"RESUME_TAILOR_LOG_LEVEL", "RESUME_TAILOR_VERBOSE",
		"JOB", "MODEL", "COMPILER", "OUTPUT_DIR", "LOG_LEVEL", "VERBOSE",
	} {
		if old, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"job": "jobs/acme.txt",
		"templates_dir": "tex",
		"max_retries": 0,
		"compile_timeout": "90s",
		"max_pages": 2,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "jobs/acme.txt", cfg.Job)
	assert.Equal(t, "tex", cfg.TemplatesDir)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, 0, *cfg.MaxRetries)
	assert.Equal(t, 90*time.Second, cfg.CompileTimeout.Duration)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
job: jobs/acme.txt
model: gemini-2.5-pro
compile_timeout: 30
history_url: sqlite://runs.db
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "jobs/acme.txt", cfg.Job)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.CompileTimeout.Duration)
	assert.Equal(t, "sqlite://runs.db", cfg.HistoryURL)
	assert.Nil(t, cfg.MaxRetries)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yml", "job: [unclosed")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", Config{})
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, defaults.Job, cfg.Job)
	assert.Equal(t, defaults.TemplatesDir, cfg.TemplatesDir)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "pdflatex", cfg.Compiler)
	assert.Equal(t, 60*time.Second, cfg.CompileTimeout.Duration)
	assert.Equal(t, 2, cfg.Retries())
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.json", `{"job": "from-file.txt", "model": "file-model", "compiler": "xelatex"}`)
	t.Setenv("RESUME_TAILOR_MODEL", "env-model")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("RESUME_TAILOR_COMPILE_TIMEOUT", "2m")

	cfg, err := Load(path, Config{Job: "from-flag.txt"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.txt", cfg.Job)
	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, "xelatex", cfg.Compiler)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.CompileTimeout.Duration)
}

func TestLoad_FlagAPIKeyBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load("", Config{APIKey: "flag-key"})
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey)
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("JOB", "/somewhere/else.txt")
	t.Setenv("MODEL", "gpt-4o")
	t.Setenv("COMPILER", "lualatex")
	t.Setenv("VERBOSE", "true")

	cfg, err := Load("", Config{})
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.Job, cfg.Job)
	assert.Equal(t, defaults.Model, cfg.Model)
	assert.Equal(t, defaults.Compiler, cfg.Compiler)
	assert.False(t, cfg.Verbose)
}

func TestLoad_PrefixedEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESUME_TAILOR_TEMPLATES_DIR", "env/templates")
	t.Setenv("RESUME_TAILOR_HISTORY_URL", "sqlite://env.db")
	t.Setenv("RESUME_TAILOR_LOG_LEVEL", "debug")
	t.Setenv("RESUME_TAILOR_MAX_RETRIES", "4")

	cfg, err := Load("", Config{})
	require.NoError(t, err)
	assert.Equal(t, "env/templates", cfg.TemplatesDir)
	assert.Equal(t, "sqlite://env.db", cfg.HistoryURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Retries())
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESUME_TAILOR_MAX_PAGES", "lots")

	_, err := Load("", Config{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	negative := -1
	tooMany := 11

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "missing job", mutate: func(c *Config) { c.Job = "" }, wantErr: "Job"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = &negative }, wantErr: "MaxRetries"},
		{name: "too many retries", mutate: func(c *Config) { c.MaxRetries = &tooMany }, wantErr: "MaxRetries"},
		{name: "negative pages", mutate: func(c *Config) { c.MaxPages = -1 }, wantErr: "MaxPages"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "LogLevel"},
		{name: "negative timeout", mutate: func(c *Config) { c.CompileTimeout = Seconds(-1) }, wantErr: "compile_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	zero := 0
	cfg := Config{Model: "custom", MaxRetries: &zero}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "custom", merged.Model)
	assert.Equal(t, 0, merged.Retries(), "explicit zero retries must survive the merge")
	assert.Equal(t, "latex/resume", merged.TemplatesDir)

	empty := Config{}
	verbose := empty.MergeWithDefaults(Config{Verbose: true})
	assert.True(t, verbose.Verbose)
}

func TestDuration_Decode(t *testing.T) {
	var d Duration
	require.NoError(t, d.Decode("45"))
	assert.Equal(t, 45*time.Second, d.Duration)
	require.NoError(t, d.Decode("1m30s"))
	assert.Equal(t, 90*time.Second, d.Duration)
	assert.Error(t, d.Decode("soon"))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Seconds(90).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
