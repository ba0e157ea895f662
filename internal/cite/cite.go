// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite normalizes model text into HTML and rewrites bracketed
// numeric citation markers into anchor links against a source list.
// See docs/ARCHITECTURE.md § Citations.
package cite

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/langnerd/pkg/types"
)

// tagPattern detects any HTML tag, used to decide whether text needs to be
// force-wrapped into paragraphs.
var tagPattern = regexp.MustCompile(`<[a-zA-Z][\s\S]*?>`)

// markerPattern matches a single citation marker: [n].
var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// groupPattern matches a grouped citation: [1, 2 3]. Groups must be split
// into adjacent single markers before linking, because nothing downstream
// understands grouped references.
var groupPattern = regexp.MustCompile(`\[(\s*\d+(?:\s*[, ]\s*\d+)+\s*)\]`)

// groupSeparator splits the inside of a grouped citation on commas and spaces.
var groupSeparator = regexp.MustCompile(`[, ]+`)

// EnsureHTML returns the text unchanged when it already contains a tag.
// Plain text is wrapped into one <p> element per non-empty line, with the
// text escaped. Empty input yields an empty paragraph so callers always
// receive a valid HTML fragment.
func EnsureHTML(text string) string {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return "<p></p>"
	}
	if tagPattern.MatchString(stripped) {
		return stripped
	}

	var b strings.Builder
	for _, line := range strings.Split(stripped, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}

// Link rewrites every in-range citation marker [n] in htmlText into a
// superscript anchor pointing at sources[n-1].URL, opening in a new tab
// with no referrer. Grouped markers like [1, 2, 3] are expanded first.
// Out-of-range markers and bracket text that is not a numeric group are
// left untouched; text with no markers is returned unchanged.
func Link(htmlText string, sources []types.SearchResult) string {
	if htmlText == "" {
		return htmlText
	}

	expanded := expandReferenceGroups(htmlText)

	return markerPattern.ReplaceAllStringFunc(expanded, func(m string) string {
		idx, err := strconv.Atoi(strings.Trim(m, "[]"))
		if err != nil {
			return m
		}
		if idx < 1 || idx > len(sources) {
			return m
		}
		url := sources[idx-1].URL
		if url == "" {
			return m
		}
		return fmt.Sprintf(`<sup><a href="%s" target="_blank" rel="noreferrer">[%d]</a></sup>`,
			html.EscapeString(url), idx)
	})
}

// expandReferenceGroups rewrites [1, 2, 3] as [1][2][3].
func expandReferenceGroups(text string) string {
	return groupPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := strings.TrimSpace(strings.Trim(m, "[]"))
		numbers := groupSeparator.Split(inner, -1)
		var b strings.Builder
		for _, n := range numbers {
			if n == "" {
				continue
			}
			b.WriteString("[")
			b.WriteString(n)
			b.WriteString("]")
		}
		if b.Len() == 0 {
			return m
		}
		return b.String()
	})
}
