package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

// WriteCSV writes a UTF-8 CSV with the export header and one record per result.
func WriteCSV(w io.Writer, results []types.GenerationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.ExportColumns()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", r.Row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a file produced by WriteCSV back into results. Columns are
// matched by header name, so extra or reordered columns are tolerated; Row is
// the 1-based record index.
func ParseCSV(r io.Reader) ([]types.GenerationResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range types.ExportColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing columns: %s", strings.Join(missing, ", "))
	}

	results := []types.GenerationResult{}
	for n := 1; ; n++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record %d: %w", n, err)
		}
		results = append(results, fromRecord(n, func(col string) string {
			if i := index[col]; i < len(record) {
				return record[i]
			}
			return ""
		}))
	}
	return results, nil
}

func fromRecord(row int, get func(col string) string) types.GenerationResult {
	return types.GenerationResult{
		ProductRow: types.ProductRow{
			Row:      row,
			Name:     get(types.ColumnProductName),
			Category: get(types.ColumnCategory),
			Price:    get(types.ColumnPrice),
			Keywords: get(types.ColumnKeywords),
		},
		MarketingCopy: types.MarketingCopy{
			Title:       get(types.ColumnTitle),
			Description: get(types.ColumnDescription),
			Hashtags:    types.SplitHashtags(get(types.ColumnHashtags)),
			Post:        get(types.ColumnPost),
			CTA:         get(types.ColumnCTA),
		},
	}
}
