package llm

import (
	"context"
	"net/http"
)

// Message roles used in chat requests.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role/content pair of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-neutral chat-completion request.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// JSONOutput asks providers that support it for a JSON response body.
	JSONOutput bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Chat sends the messages and returns the text of the first choice
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// Model returns the model name requests are sent to
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// ClientOption customizes client construction.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used by providers that accept one.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, cfg ProviderConfig, opts ...ClientOption) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, o.httpClient)
	case ProviderMock:
		return NewMockClient(cfg.Model), nil
	default:
		return NewOpenAIClient(cfg, o.httpClient)
	}
}

// lastUserMessage returns the content of the last user message.
func lastUserMessage(msgs []Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
