package generation

import (
	"fmt"

	"github.com/jonathan/sheet-copywriter/internal/llm"
	"github.com/jonathan/sheet-copywriter/internal/prompts"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Sampling parameters used for every product.
const (
	DefaultTemperature = 0.9
	DefaultMaxTokens   = 180
)

// PromptTemplate is the fixed system + user message pair.
type PromptTemplate struct {
	System string
	User   string
}

// LoadPromptTemplate reads the embedded product copy prompts.
func LoadPromptTemplate() (PromptTemplate, error) {
	system, err := prompts.Get(prompts.GenerationFile, prompts.ProductCopySystem)
	if err != nil {
		return PromptTemplate{}, fmt.Errorf("failed to load system prompt: %w", err)
	}
	user, err := prompts.Get(prompts.GenerationFile, prompts.ProductCopyUser)
	if err != nil {
		return PromptTemplate{}, fmt.Errorf("failed to load user prompt: %w", err)
	}
	return PromptTemplate{System: system, User: user}, nil
}

// Messages renders the prompt for one product.
func (p PromptTemplate) Messages(row types.ProductRow) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: prompts.Format(p.User, map[string]string{
			"Name":     row.Name,
			"Category": row.Category,
			"Price":    row.Price,
			"Keywords": row.Keywords,
		})},
	}
}
