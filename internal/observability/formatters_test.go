package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rows := make([][]string, 7)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("Item %d", i+1), "Cat", "1", "kw"}
	}
	p.PrintTable(types.RequiredColumns(), rows)
	output := buf.String()

	assert.Contains(t, output, "SHEET PREVIEW")
	assert.Contains(t, output, "Product_Name, Category, Price, Keywords")
	assert.Contains(t, output, "Item 5 | Cat | 1 | kw")
	assert.NotContains(t, output, "Item 6")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintMissingColumns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMissingColumns(nil)
	assert.Empty(t, buf.String())

	p.PrintMissingColumns([]string{"Price", "Keywords"})
	output := buf.String()
	assert.Contains(t, output, "INVALID SHEET FORMAT")
	assert.Contains(t, output, "• Price")
	assert.Contains(t, output, "• Keywords")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResults([]types.GenerationResult{
		{
			ProductRow:    types.ProductRow{Row: 1, Name: "Mug"},
			MarketingCopy: types.MarketingCopy{Title: "Morning Mug", Hashtags: []string{"#coffee", "#mug"}},
		},
		{
			ProductRow:    types.ProductRow{Row: 2, Name: "Lamp"},
			MarketingCopy: types.EmptyCopy(),
			Err:           "parse error: response is not a JSON object",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED COPY")
	assert.Contains(t, output, "Generated: 1   Defaulted: 1")
	assert.Contains(t, output, "✓ Mug")
	assert.Contains(t, output, "#coffee, #mug")
	assert.Contains(t, output, "✗ Lamp")
}

func TestPrintResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResults(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStep("generate", "completed", "Generated 3 result(s)")
	p.PrintStep("write_sheet", "failed", "quota")

	assert.Equal(t, "✓ [generate] Generated 3 result(s)\n✗ [write_sheet] quota\n", buf.String())
}
