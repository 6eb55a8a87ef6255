// Package export renders generation results as downloadable CSV or XLSX files.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// UnsupportedFormatError is returned for any format other than csv or xlsx.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q (expected csv or xlsx)", e.Format)
}

// ParseFormat accepts "csv" or "xlsx" in any case, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// MIMEType returns the content type served for f.
func (f Format) MIMEType() string {
	if f == FormatXLSX {
		return MIMEXLSX
	}
	return MIMECSV
}

// Filename returns the default download name for f.
func (f Format) Filename() string {
	return "generated_products." + string(f)
}

// Write renders results to w in the given format.
func Write(w io.Writer, f Format, results []types.GenerationResult) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatXLSX:
		return WriteXLSX(w, results)
	default:
		return &UnsupportedFormatError{Format: string(f)}
	}
}
