// Package sheets reads product tables from a spreadsheet service and writes
// generated copy back into fixed output columns.
package sheets

import (
	"regexp"
	"strconv"
)

var (
	documentIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	sheetIDPattern    = regexp.MustCompile(`gid=(\d+)`)
)

// Locator identifies a worksheet. A nil SheetID selects the first worksheet.
type Locator struct {
	DocumentID string `json:"document_id"`
	SheetID    *int64 `json:"sheet_id,omitempty"`
}

// ParseURL extracts the document id (the segment after /d/) and the optional
// gid, which may appear in the query string or the fragment.
func ParseURL(rawURL string) (Locator, error) {
	m := documentIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return Locator{}, &InvalidURLError{URL: rawURL}
	}

	loc := Locator{DocumentID: m[1]}
	if g := sheetIDPattern.FindStringSubmatch(rawURL); g != nil {
		id, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil {
			return Locator{}, &InvalidURLError{URL: rawURL}
		}
		loc.SheetID = &id
	}
	return loc, nil
}
