// Package types provides type definitions for structured data used throughout the sheet-copywriter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Source sheet columns that every product sheet must carry.
const (
	ColumnProductName = "Product_Name"
	ColumnCategory    = "Category"
	ColumnPrice       = "Price"
	ColumnKeywords    = "Keywords"
)

// Generated columns, written back to the sheet and to exports.
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnHashtags    = "hashtags"
	ColumnPost        = "post"
	ColumnCTA         = "cta"
)

// HashtagSeparator joins hashtags when they are flattened into a single cell.
const HashtagSeparator = ", "

// RequiredColumns returns the source columns in canonical order.
func RequiredColumns() []string {
	return []string{ColumnProductName, ColumnCategory, ColumnPrice, ColumnKeywords}
}

// GeneratedColumns returns the generated columns in sheet order (E..I).
func GeneratedColumns() []string {
	return []string{ColumnTitle, ColumnDescription, ColumnHashtags, ColumnPost, ColumnCTA}
}

// ProductRow is one product read from the sheet. Row is the 1-based data row
// position and is the only identity a product has.
type ProductRow struct {
	Row      int    `json:"row"`
	Name     string `json:"Product_Name"`
	Category string `json:"Category"`
	Price    string `json:"Price"`
	Keywords string `json:"Keywords"`
}

// MarketingCopy is the structured output requested from the model.
type MarketingCopy struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
	Post        string   `json:"post"`
	CTA         string   `json:"cta"`
}

// EmptyCopy returns the copy substituted for rows whose generation failed.
func EmptyCopy() MarketingCopy {
	return MarketingCopy{Hashtags: []string{}}
}

// IsEmpty reports whether no field carries generated text.
func (c MarketingCopy) IsEmpty() bool {
	return c.Title == "" && c.Description == "" && len(c.Hashtags) == 0 && c.Post == "" && c.CTA == ""
}

// JoinedHashtags flattens hashtags into the single-cell representation.
func (c MarketingCopy) JoinedHashtags() string {
	return strings.Join(c.Hashtags, HashtagSeparator)
}

// GenerationResult is a product merged with its generated copy.
// Err is set when the copy was defaulted; it never makes the result invalid.
type GenerationResult struct {
	ProductRow
	MarketingCopy
	Err string `json:"error,omitempty"`
}

// Failed reports whether the copy for this row was defaulted.
func (r GenerationResult) Failed() bool {
	return r.Err != ""
}

// GeneratedValues returns the generated fields in sheet column order.
func (r GenerationResult) GeneratedValues() []string {
	return []string{r.Title, r.Description, r.JoinedHashtags(), r.Post, r.CTA}
}

// Record returns source and generated fields in export column order.
func (r GenerationResult) Record() []string {
	return append([]string{r.Name, r.Category, r.Price, r.Keywords}, r.GeneratedValues()...)
}

// ExportColumns returns the header used by CSV and XLSX exports.
func ExportColumns() []string {
	return append(RequiredColumns(), GeneratedColumns()...)
}

// SplitHashtags is the inverse of JoinedHashtags. Empty input yields an empty slice.
func SplitHashtags(joined string) []string {
	tags := []string{}
	for _, tag := range strings.Split(joined, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
