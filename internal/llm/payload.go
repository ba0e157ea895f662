// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpen  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// ExtractObject isolates a JSON object embedded in raw model output and
// unmarshals it into v. It strips a surrounding Markdown code fence, then
// scans for the first balanced top-level {...} span (tracking brace depth
// and respecting string literals and escapes, so braces inside strings do
// not end the span). When no balanced span exists the cleaned text itself
// is tried as a last resort. Returns false when nothing parses; never
// returns an error, callers fall back to defaults.
func ExtractObject(raw string, v any) bool {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = fenceOpen.ReplaceAllString(cleaned, "")
		cleaned = fenceClose.ReplaceAllString(cleaned, "")
	}

	candidate := cleaned
	if span, ok := objectSpan(cleaned); ok {
		candidate = span
	}

	return json.Unmarshal([]byte(candidate), v) == nil
}

// objectSpan returns the first balanced top-level JSON object in text.
func objectSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
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
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
