package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCache forces the next lookup to read the embedded file again.
func clearCache(t *testing.T) {
	t.Helper()
	cacheMu.Lock()
	cache = map[string]map[string]string{}
	cacheMu.Unlock()
}

func TestGet_ProductCopyPrompts(t *testing.T) {
	clearCache(t)

	system, err := Get(GenerationFile, ProductCopySystem)
	require.NoError(t, err)
	assert.Contains(t, system, "Return **ONLY valid JSON**")
	assert.Contains(t, system, `"hashtags": ["...", "...", "...", "...", "..."]`)

	user, err := Get(GenerationFile, ProductCopyUser)
	require.NoError(t, err)
	assert.Equal(t, user, mustGet(t, GenerationFile, ProductCopyUser), "second lookup is served from the cache")
	assert.Contains(t, user, "{{.Name}}")
	assert.Contains(t, user, "{{.Keywords}}")
}

func TestGet_InvalidFile(t *testing.T) {
	clearCache(t)

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	clearCache(t)

	_, err := Get(GenerationFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "all placeholders",
			template: "- Name: {{.Name}}\n- Price: {{.Price}}",
			data:     map[string]string{"Name": "Mug", "Price": "9.99"},
			expected: "- Name: Mug\n- Price: 9.99",
		},
		{
			name:     "missing value left in place",
			template: "{{.Name}} {{.Other}}",
			data:     map[string]string{"Name": "Mug"},
			expected: "Mug {{.Other}}",
		},
		{
			name:     "values are not re-expanded",
			template: "{{.Name}}",
			data:     map[string]string{"Name": "{{.Price}}", "Price": "1"},
			expected: "{{.Price}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func mustGet(t *testing.T, filename, key string) string {
	t.Helper()
	prompt, err := Get(filename, key)
	require.NoError(t, err)
	return prompt
}
