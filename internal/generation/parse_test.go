package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

func TestParseCopy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.MarketingCopy
	}{
		{
			name:  "strict",
			input: `{"title":"T","description":"D","hashtags":["#a","#b"],"post":"P","cta":"C"}`,
			expected: types.MarketingCopy{
				Title: "T", Description: "D", Hashtags: []string{"#a", "#b"}, Post: "P", CTA: "C",
			},
		},
		{
			name:  "relaxed with fence and trailing commas",
			input: "```json\n{title: 'T', hashtags: ['#a',], cta: 'C',}\n```",
			expected: types.MarketingCopy{
				Title: "T", Hashtags: []string{"#a"}, CTA: "C",
			},
		},
		{
			name:     "escaped apostrophe",
			input:    `{"title": "It\'s here", "cta": "Buy"}`,
			expected: types.MarketingCopy{Title: "It's here", Hashtags: []string{}, CTA: "Buy"},
		},
		{
			name:     "hashtags as one string",
			input:    `{"title":"T","hashtags":"#a, #b #c"}`,
			expected: types.MarketingCopy{Title: "T", Hashtags: []string{"#a", "#b", "#c"}},
		},
		{
			name:     "numbers and nulls",
			input:    `{"title": 2024, "description": null, "post": true, "hashtags": null}`,
			expected: types.MarketingCopy{Title: "2024", Post: "true", Hashtags: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCopy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCopy_Failures(t *testing.T) {
	for _, input := range []string{
		"",
		"no json here",
		`{"title": "cut`,
		`{"unrelated": "x"}`,
		`{"title": {"nested": true}}`,
	} {
		got, err := ParseCopy(input)
		require.Error(t, err, input)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
		assert.Equal(t, types.EmptyCopy(), got)
	}
}
