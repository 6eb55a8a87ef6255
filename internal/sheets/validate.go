package sheets

import "github.com/jonathan/sheet-copywriter/internal/types"

// MissingColumns returns the required columns absent from the table, in
// canonical order. An empty result means the table is valid.
func MissingColumns(t *Table) []string {
	return ValidateHeaders(t.Headers)
}

// ValidateHeaders is MissingColumns for a bare header row.
func ValidateHeaders(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	missing := []string{}
	for _, col := range types.RequiredColumns() {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
