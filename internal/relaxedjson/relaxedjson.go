// Package relaxedjson decodes the JSON objects language models tend to emit.
//
// Normalize rewrites a single object into strict JSON. Accepted deviations:
//
//   - prose or Markdown code fences around the object (anything after the
//     object's closing brace is ignored)
//   - // line comments and /* */ block comments outside strings
//   - trailing commas before } or ]
//   - single-quoted strings
//   - unquoted object keys made of [A-Za-z0-9_$]
//   - raw newlines, carriage returns and tabs inside strings
//   - \' escapes in either kind of string
//
// NaN, Infinity, hex numbers and top-level arrays are still rejected.
package relaxedjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SyntaxError reports input that cannot be normalized into a JSON object.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("relaxed json: %s (offset %d)", e.Message, e.Offset)
}

// Normalize returns the first JSON object in text as strict JSON.
func Normalize(text string) (string, error) {
	text = StripCodeFence(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &SyntaxError{Message: "no JSON object found", Offset: 0}
	}
	src := text[start:]

	out := make([]byte, 0, len(src))
	depth := 0
	closed := false

	for i := 0; i < len(src) && !closed; {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			s, n, err := readString(src[i:])
			if err != nil {
				err.Offset += start + i
				return "", err
			}
			out = append(out, s...)
			i += n
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
				i += j
			} else {
				i = len(src)
			}
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			j := strings.Index(src[i+2:], "*/")
			if j < 0 {
				return "", &SyntaxError{Message: "unterminated comment", Offset: start + i}
			}
			i += j + 4
			continue
		case c == '{' || c == '[':
			depth++
			out = append(out, c)
		case c == '}' || c == ']':
			out = trimTrailingComma(out)
			out = append(out, c)
			depth--
			closed = depth == 0
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdent(src[j]) {
				j++
			}
			word := src[i:j]
			if nextNonSpace(src, j) == ':' {
				out = append(out, '"')
				out = append(out, word...)
				out = append(out, '"')
			} else {
				out = append(out, word...)
			}
			i = j
			continue
		default:
			out = append(out, c)
		}
		i++
	}

	if !closed {
		return "", &SyntaxError{Message: "unterminated object", Offset: len(text)}
	}
	if !json.Valid(out) {
		return "", &SyntaxError{Message: "invalid JSON after normalization", Offset: start}
	}
	return string(out), nil
}

// StripCodeFence removes a Markdown code block wrapper such as ```json ... ```.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// readString converts the quoted string at the start of s into a
// double-quoted JSON string and returns it with the bytes consumed.
func readString(s string) (string, int, *SyntaxError) {
	quote := s[0]
	var sb strings.Builder
	sb.WriteByte('"')

	for j := 1; j < len(s); j++ {
		ch := s[j]
		switch {
		case ch == '\\':
			if j+1 >= len(s) {
				return "", 0, &SyntaxError{Message: "unterminated escape", Offset: j}
			}
			next := s[j+1]
			if next == '\'' {
				sb.WriteByte('\'')
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
			j++
		case ch == quote:
			sb.WriteByte('"')
			return sb.String(), j + 1, nil
		case ch == '"':
			sb.WriteString(`\"`)
		case ch == '\n':
			sb.WriteString(`\n`)
		case ch == '\r':
			sb.WriteString(`\r`)
		case ch == '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(ch)
		}
	}
	return "", 0, &SyntaxError{Message: "unterminated string", Offset: len(s)}
}

func trimTrailingComma(out []byte) []byte {
	k := len(out) - 1
	for k >= 0 && isSpace(out[k]) {
		k--
	}
	if k >= 0 && out[k] == ',' {
		return append(out[:k], out[k+1:]...)
	}
	return out
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		if !isSpace(s[i]) {
			return s[i]
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
