package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

func sampleResults() []types.GenerationResult {
	return []types.GenerationResult{
		{
			ProductRow: types.ProductRow{Row: 1, Name: "Mug", Category: "Kitchen", Price: "9.99", Keywords: "coffee, ceramic"},
			MarketingCopy: types.MarketingCopy{
				Title:       "Morning Mug",
				Description: "Holds coffee, \"and\" tea.",
				Hashtags:    []string{"a", "b", "c"},
				Post:        "Line one\nLine two",
				CTA:         "Buy now",
			},
		},
		{
			ProductRow:    types.ProductRow{Row: 2, Name: "Café Lamp", Category: "Décor", Price: "24", Keywords: "light"},
			MarketingCopy: types.EmptyCopy(),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "Product_Name,Category,Price,Keywords,title,description,hashtags,post,cta", lines[0])
	assert.Contains(t, buf.String(), `"a, b, c"`)
	assert.Contains(t, buf.String(), "Café Lamp,Décor,24,light,,,,,")
}

func TestWriteCSV_HeaderOnlyForNoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Product_Name,Category,Price,Keywords,title,description,hashtags,post,cta\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	got, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), got)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Product_Name,Category\nMug,Kitchen\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price")
}

func TestXLSXRoundTrip(t *testing.T) {
	data, err := XLSXBytes(sampleResults())
	require.NoError(t, err)

	got, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), got)
}

func TestWriteXLSX_BoldHeader(t *testing.T) {
	data, err := XLSXBytes(sampleResults())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	v, err := f.GetCellValue(SheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", v)

	styleID, err := f.GetCellStyle(SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: ".XLSX", want: FormatXLSX},
		{in: "pdf", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var fmtErr *UnsupportedFormatError
				assert.ErrorAs(t, err, &fmtErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := FormatForPath("out/results.xlsx")
	require.NoError(t, err)
	assert.Equal(t, MIMEXLSX, f.MIMEType())
	assert.Equal(t, "generated_products.csv", FormatCSV.Filename())
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleResults()))
	assert.True(t, strings.HasPrefix(buf.String(), "Product_Name"))

	assert.Error(t, Write(&buf, Format("pdf"), nil))
}
