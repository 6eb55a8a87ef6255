package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// MockClient returns deterministic copy built from the prompt. It makes no
// network calls and is meant for dry runs.
type MockClient struct {
	model string
}

// NewMockClient creates a mock client.
func NewMockClient(model string) *MockClient {
	if model == "" {
		model = "mock"
	}
	return &MockClient{model: model}
}

// Chat echoes the product name from the last user message into every field.
func (m *MockClient) Chat(_ context.Context, req ChatRequest) (string, error) {
	name := "Product"
	for _, line := range strings.Split(lastUserMessage(req.Messages), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if v, ok := strings.CutPrefix(line, "Name:"); ok && strings.TrimSpace(v) != "" {
			name = strings.TrimSpace(v)
			break
		}
	}

	tag := "#" + strings.ReplaceAll(strings.ToLower(name), " ", "")
	out, err := json.Marshal(map[string]any{
		"title":       name,
		"description": "Discover " + name + ".",
		"hashtags":    []string{tag, "#new", "#deal", "#shop", "#trending"},
		"post":        "Meet " + name + ", now available.",
		"cta":         "Shop " + name + " today",
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Model returns the mock model name.
func (m *MockClient) Model() string {
	return m.model
}

// Close is a no-op.
func (m *MockClient) Close() error {
	return nil
}
