// Package extract recovers structured data from free-form model output.
//
// Model output is never trusted to be well formed. Every function here
// returns a *ParseError when the expected shape is missing, and every caller
// decides its own fallback.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type ParseError struct {
	Kind   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Kind, e.Reason)
}

var (
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	arrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
	fencedPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	tablePattern  = regexp.MustCompile(`(?is)<table\b.*?</table>`)
)

// JSONObject decodes the span from the first '{' to the last '}' into v.
func JSONObject(text string, v any) error {
	span := objectPattern.FindString(text)
	if span == "" {
		return &ParseError{Kind: "json object", Reason: "no object found"}
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &ParseError{Kind: "json object", Reason: err.Error()}
	}
	return nil
}

// JSONArray decodes the span from the first '[' to the last ']' into v.
func JSONArray(text string, v any) error {
	span := arrayPattern.FindString(text)
	if span == "" {
		return &ParseError{Kind: "json array", Reason: "no array found"}
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &ParseError{Kind: "json array", Reason: err.Error()}
	}
	return nil
}

// FencedJSON decodes the first ```json fenced block into v.
func FencedJSON(text string, v any) error {
	m := fencedPattern.FindStringSubmatch(text)
	if m == nil {
		return &ParseError{Kind: "fenced json", Reason: "no ```json block found"}
	}
	if err := json.Unmarshal([]byte(m[1]), v); err != nil {
		return &ParseError{Kind: "fenced json", Reason: err.Error()}
	}
	return nil
}

// HTMLTable returns the first <table>...</table> element, markup included.
func HTMLTable(text string) (string, error) {
	table := tablePattern.FindString(text)
	if table == "" {
		return "", &ParseError{Kind: "html table", Reason: "no table found"}
	}
	return table, nil
}

// TaggedBlock finds "TAG:" followed by a balanced {...} object, decodes it
// into v and returns text with the whole tagged span removed.
func TaggedBlock(text, tag string, v any) (string, error) {
	marker := tag + ":"
	start := strings.Index(text, marker)
	if start < 0 {
		return text, &ParseError{Kind: tag, Reason: "tag not found"}
	}

	open := strings.IndexByte(text[start+len(marker):], '{')
	if open < 0 {
		return text, &ParseError{Kind: tag, Reason: "no object after tag"}
	}
	open += start + len(marker)
	if strings.TrimSpace(text[start+len(marker):open]) != "" {
		return text, &ParseError{Kind: tag, Reason: "unexpected text between tag and object"}
	}

	end := balancedEnd(text, open)
	if end < 0 {
		return text, &ParseError{Kind: tag, Reason: "unterminated object"}
	}
	if err := json.Unmarshal([]byte(text[open:end]), v); err != nil {
		return text, &ParseError{Kind: tag, Reason: err.Error()}
	}

	return text[:start] + text[end:], nil
}

// balancedEnd returns the index just past the brace closing the one at
// open, skipping braces inside JSON strings. It returns -1 when unbalanced.
func balancedEnd(text string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// ObjectOr is JSONObject with a caller-supplied fallback.
func ObjectOr[T any](text string, fallback T) (T, bool) {
	var v T
	if err := JSONObject(text, &v); err != nil {
		return fallback, false
	}
	return v, true
}
