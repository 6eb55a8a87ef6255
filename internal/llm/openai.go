package llm

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client for OpenAI-compatible chat-completion endpoints.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a client for cfg.BaseURL (or the OpenAI default).
// SDK-level retries are disabled; retrying is the caller's policy.
func NewOpenAIClient(cfg ProviderConfig, httpClient *http.Client) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, &APICallError{Provider: ProviderOpenAI, Message: "API key is required"}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Chat sends a chat-completion request and returns the first choice's content.
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &APICallError{Provider: ProviderOpenAI, Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &APICallError{Provider: ProviderOpenAI, Message: "empty choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Close is a no-op; the SDK client holds no resources.
func (c *OpenAIClient) Close() error {
	return nil
}
