package generation

import (
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/jonathan/sheet-copywriter/internal/relaxedjson"
	"github.com/jonathan/sheet-copywriter/internal/schemas"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

// ParseCopy decodes a model response into MarketingCopy. The response may be
// relaxed JSON; scalar fields may be numbers or booleans and hashtags may be
// a list or a single comma/space separated string. Absent fields are empty.
func ParseCopy(text string) (types.MarketingCopy, error) {
	normalized, err := relaxedjson.Normalize(text)
	if err != nil {
		return types.EmptyCopy(), &ParseError{Message: "response is not a JSON object", Cause: err}
	}
	if err := schemas.ValidateDocument(schemas.MarketingCopySchema, []byte(normalized)); err != nil {
		return types.EmptyCopy(), &ParseError{Message: "response does not match the copy schema", Cause: err}
	}

	doc := gjson.Parse(normalized)
	return types.MarketingCopy{
		Title:       scalar(doc.Get(types.ColumnTitle)),
		Description: scalar(doc.Get(types.ColumnDescription)),
		Hashtags:    hashtags(doc.Get(types.ColumnHashtags)),
		Post:        scalar(doc.Get(types.ColumnPost)),
		CTA:         scalar(doc.Get(types.ColumnCTA)),
	}, nil
}

func scalar(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return r.String()
}

func hashtags(r gjson.Result) []string {
	tags := []string{}
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				tags = append(tags, s)
			}
		}
	case r.Type == gjson.String:
		tags = append(tags, strings.FieldsFunc(r.String(), func(c rune) bool {
			return c == ',' || unicode.IsSpace(c)
		})...)
	}
	return tags
}
