package sheets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Table is a sheet's data rows keyed by trimmed header name. Cells are kept
// as strings; nothing is coerced.
type Table struct {
	Headers []string
	Rows    [][]string
	index   map[string]int
}

// NewTable converts a raw cell grid into a Table. The first row is the
// header row. The API omits trailing empty cells, so the header row is padded
// to the widest row and a data cell without a header is reported as a blank
// header. Data rows are padded to the header width.
func NewTable(values [][]string) (*Table, error) {
	if len(values) < 2 {
		return nil, &EmptyDataError{Rows: len(values)}
	}

	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}
	raw := make([]string, width)
	copy(raw, values[0])

	headers := make([]string, width)
	index := make(map[string]int, len(headers))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &MalformedHeaderError{Reason: "empty column headers are not allowed", Column: i + 1}
		}
		if _, dup := index[h]; dup {
			return nil, &MalformedHeaderError{Reason: "duplicate column header", Column: i + 1, Header: h}
		}
		headers[i] = h
		index[h] = i
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(headers))
		copy(row, raw)
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows, index: index}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether a header exists (exact, case-sensitive).
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell of a data row (0-based) under a header, or "".
func (t *Table) Get(row int, column string) string {
	col, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][col]
}

// Records returns each data row as a header → cell map.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[h] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// Products maps the required columns of every data row into ProductRows.
func (t *Table) Products() ([]types.ProductRow, error) {
	if missing := MissingColumns(t); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	products := make([]types.ProductRow, 0, len(t.Rows))
	for i := range t.Rows {
		products = append(products, types.ProductRow{
			Row:      i + 1,
			Name:     t.Get(i, types.ColumnProductName),
			Category: t.Get(i, types.ColumnCategory),
			Price:    t.Get(i, types.ColumnPrice),
			Keywords: t.Get(i, types.ColumnKeywords),
		})
	}
	return products, nil
}

// MarshalJSON renders headers plus rows as objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	out, err := json.Marshal(struct {
		Headers []string            `json:"headers"`
		Rows    []map[string]string `json:"rows"`
	}{Headers: t.Headers, Rows: t.Records()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table: %w", err)
	}
	return out, nil
}
