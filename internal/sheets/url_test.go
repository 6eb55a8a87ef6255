package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		docID   string
		sheetID *int64
	}{
		{
			name:    "gid in fragment",
			url:     "https://docs.example.com/spreadsheets/d/ABC123/edit#gid=456",
			docID:   "ABC123",
			sheetID: int64Ptr(456),
		},
		{
			name:    "gid in query",
			url:     "https://docs.google.com/spreadsheets/d/1a-B_c/edit?gid=0",
			docID:   "1a-B_c",
			sheetID: int64Ptr(0),
		},
		{
			name:  "no gid",
			url:   "https://docs.google.com/spreadsheets/d/XYZ/edit",
			docID: "XYZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.docID, loc.DocumentID)
			assert.Equal(t, tt.sheetID, loc.SheetID)
		})
	}
}

func TestParseURL_MissingDocumentID(t *testing.T) {
	for _, url := range []string{
		"https://docs.example.com/spreadsheets/edit#gid=456",
		"",
		"not a url",
		"https://docs.example.com/d/",
	} {
		_, err := ParseURL(url)
		require.Error(t, err, url)
		var invalid *InvalidURLError
		assert.ErrorAs(t, err, &invalid)
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
