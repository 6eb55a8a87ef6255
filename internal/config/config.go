// Package config provides configuration loading and validation for the CLI
// and HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/sheet-copywriter/internal/generation"
	"github.com/jonathan/sheet-copywriter/internal/llm"
)

// Environment variables read by FromEnv.
const (
	EnvProvider       = "LLM_PROVIDER"
	EnvBaseURL        = "LLM_BASE_URL"
	EnvModel          = "LLM_MODEL"
	EnvAPIKey         = "LLM_API_KEY"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvGeminiKey      = "GEMINI_API_KEY"
	EnvCredentials    = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvMaxConcurrency = "MAX_CONCURRENCY"
	EnvLogEnv         = "LOG_ENV"
	EnvPort           = "PORT"
)

const (
	DefaultPort   = 8080
	DefaultLogEnv = "development"

	defaultRetryDelay  = 500
	defaultRetryTimes  = 3
	maxRetryAttempts   = 10
	maxRequestTimeoutS = 600
)

// Config represents the tool configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Provider
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // openai, gemini or mock
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // OpenAI-compatible endpoint
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Google Sheets service account JSON
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`

	// Generation
	MaxConcurrency        int `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty"` // 0 = one goroutine per row
	RetryAttempts         int `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty"`
	RetryDelayMS          int `json:"retry_delay_ms,omitempty" yaml:"retry_delay_ms,omitempty"`
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty" yaml:"request_timeout_seconds,omitempty"`

	LogEnv string `json:"log_env,omitempty" yaml:"log_env,omitempty"`
	Port   int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// LoadConfig loads configuration from a .json, .yaml or .yml file.
// Returns an error if the file cannot be read or parsed.
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

// FromEnv builds a Config from environment variables. The provider-specific
// key (OPENAI_API_KEY or GEMINI_API_KEY) wins over LLM_API_KEY.
func FromEnv() (Config, error) {
	cfg := Config{
		Provider:        os.Getenv(EnvProvider),
		BaseURL:         os.Getenv(EnvBaseURL),
		Model:           os.Getenv(EnvModel),
		APIKey:          os.Getenv(EnvAPIKey),
		CredentialsFile: os.Getenv(EnvCredentials),
		LogEnv:          os.Getenv(EnvLogEnv),
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case string(llm.ProviderGemini):
		if v := os.Getenv(EnvGeminiKey); v != "" {
			cfg.APIKey = v
		}
	case string(llm.ProviderMock):
	default:
		if v := os.Getenv(EnvOpenAIKey); v != "" {
			cfg.APIKey = v
		}
	}

	var err error
	if cfg.MaxConcurrency, err = envInt(EnvMaxConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = envInt(EnvPort); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

// Validate checks that the configuration has valid values.
// Note: a missing API key is reported by ProviderConfig validation, since
// the mock provider needs none.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, err := llm.ParseProvider(c.Provider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}
	if c.RetryAttempts < 0 || c.RetryAttempts > maxRetryAttempts {
		return fmt.Errorf("config error: 'retry_attempts' must be between 0 and %d", maxRetryAttempts)
	}
	if c.RetryDelayMS < 0 {
		return fmt.Errorf("config error: 'retry_delay_ms' must be non-negative")
	}
	if c.RequestTimeoutSeconds < 0 || c.RequestTimeoutSeconds > maxRequestTimeoutS {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be between 0 and %d", maxRequestTimeoutS)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}

	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer CLI flags over the config file over the environment.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.LogEnv == "" {
		result.LogEnv = defaults.LogEnv
	}

	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}
	if result.RetryAttempts == 0 {
		result.RetryAttempts = defaults.RetryAttempts
	}
	if result.RetryDelayMS == 0 {
		result.RetryDelayMS = defaults.RetryDelayMS
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// ProviderConfig returns the model provider settings, filling the model from
// the provider's default when unset.
func (c *Config) ProviderConfig() (llm.ProviderConfig, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return llm.ProviderConfig{}, err
	}
	pc := llm.DefaultFor(provider).WithAPIKey(c.APIKey)
	if c.Model != "" {
		pc = pc.WithModel(c.Model)
	}
	pc.BaseURL = c.BaseURL
	return pc, nil
}

// GeneratorOptions returns the batch options. Zero retry fields fall back to
// 3 attempts with 500ms between them.
func (c *Config) GeneratorOptions() generation.Options {
	opts := generation.DefaultOptions()
	opts.MaxConcurrency = c.MaxConcurrency

	attempts := c.RetryAttempts
	if attempts == 0 {
		attempts = defaultRetryTimes
	}
	delay := c.RetryDelayMS
	if delay == 0 {
		delay = defaultRetryDelay
	}
	opts.Retry = generation.RetryPolicy{Attempts: attempts, Delay: time.Duration(delay) * time.Millisecond}
	opts.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return opts
}

// ListenPort returns Port or DefaultPort.
func (c *Config) ListenPort() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}

// LoggingEnv returns LogEnv or DefaultLogEnv.
func (c *Config) LoggingEnv() string {
	if c.LogEnv == "" {
		return DefaultLogEnv
	}
	return c.LogEnv
}
