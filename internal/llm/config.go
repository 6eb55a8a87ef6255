// Package llm provides provider configuration and chat-completion clients.
// A Client is built once per batch from an immutable ProviderConfig.
package llm

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completions endpoint
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderMock returns canned copy without network access
	ProviderMock Provider = "mock"
)

// ProviderConfig identifies the endpoint used for one generation batch.
// It is passed by value and never mutated while a batch runs.
type ProviderConfig struct {
	Provider Provider `json:"provider" yaml:"provider" validate:"required,oneof=openai gemini mock"`
	BaseURL  string   `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Model    string   `json:"model" yaml:"model" validate:"required_unless=Provider mock"`
	APIKey   string   `json:"-" yaml:"-" validate:"required_unless=Provider mock"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration (OpenAI)
func DefaultConfig() ProviderConfig {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() ProviderConfig {
	return ProviderConfig{
		Provider: ProviderOpenAI,
		Model:    "gpt-4o-mini",
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() ProviderConfig {
	return ProviderConfig{
		Provider: ProviderGemini,
		Model:    "gemini-2.5-flash",
	}
}

// DefaultFor returns the default configuration for a provider name.
func DefaultFor(provider Provider) ProviderConfig {
	switch provider {
	case ProviderGemini:
		return DefaultGeminiConfig()
	case ProviderMock:
		return ProviderConfig{Provider: ProviderMock, Model: "mock"}
	default:
		return DefaultOpenAIConfig()
	}
}

// ParseProvider normalizes a provider name.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderOpenAI, ProviderGemini, ProviderMock:
		return p, nil
	case "":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported provider %q", name)
	}
}

// WithAPIKey returns a copy of the config carrying the given key.
func (c ProviderConfig) WithAPIKey(key string) ProviderConfig {
	c.APIKey = key
	return c
}

// WithModel returns a copy of the config using the given model.
func (c ProviderConfig) WithModel(model string) ProviderConfig {
	c.Model = model
	return c
}

// Validate checks that the configuration can build a client.
func (c ProviderConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid provider config: %w", err)
	}
	return nil
}

// String hides the API key.
func (c ProviderConfig) String() string {
	key := ""
	if c.APIKey != "" {
		key = "****"
	}
	return fmt.Sprintf("provider=%s model=%s base_url=%s api_key=%s", c.Provider, c.Model, c.BaseURL, key)
}
