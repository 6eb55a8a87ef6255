package sheets

import (
	"fmt"
	"strings"
)

// InvalidURLError is returned when a URL has no /d/<document-id> segment.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid spreadsheet URL: %q has no /d/<document-id> segment", e.URL)
}

// EmptyDataError is returned when a sheet has no header row or no data rows.
type EmptyDataError struct {
	Rows int
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("the sheet is empty or has no data (found %d rows, need a header and at least one data row)", e.Rows)
}

// MalformedHeaderError is returned for blank or duplicate header cells.
type MalformedHeaderError struct {
	Reason string
	Column int
	Header string
}

func (e *MalformedHeaderError) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("invalid sheet format: %s: %q (column %d)", e.Reason, e.Header, e.Column)
	}
	return fmt.Sprintf("invalid sheet format: %s (column %d)", e.Reason, e.Column)
}

// MissingColumnsError lists required columns absent from a sheet. The
// validator reports these as values; callers decide whether to return this.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("invalid sheet format: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// SheetNotFoundError is returned when a gid does not match any worksheet.
type SheetNotFoundError struct {
	DocumentID string
	SheetID    int64
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet gid=%d not found in spreadsheet %s", e.SheetID, e.DocumentID)
}

// SheetFetchError is returned when the spreadsheet API cannot return values.
type SheetFetchError struct {
	DocumentID string
	Cause      error
}

func (e *SheetFetchError) Error() string {
	return fmt.Sprintf("failed to fetch sheet %s: %v", e.DocumentID, e.Cause)
}

func (e *SheetFetchError) Unwrap() error {
	return e.Cause
}

// SheetWriteError is returned when writing results back fails. Stage is
// "headers" or "values"; earlier stages are not rolled back.
type SheetWriteError struct {
	Stage string
	Range string
	Cause error
}

func (e *SheetWriteError) Error() string {
	return fmt.Sprintf("failed to write %s to %s: %v", e.Stage, e.Range, e.Cause)
}

func (e *SheetWriteError) Unwrap() error {
	return e.Cause
}
