// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes structured guides into standalone HTML
// documents that mirror the guide schema section by section.
// See docs/ARCHITECTURE.md § Export.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/pdiddy/langnerd/pkg/types"
)

// Writer emits one HTML file per guide into a fixed output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates the output directory and returns a document writer.
func NewWriter(cfg types.ExportConfig) (*Writer, error) {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "generated"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &Writer{outputDir: dir}, nil
}

// section is one rendered block of the document. Body and card values are
// pre-normalized HTML fragments, so they pass through unescaped.
type section struct {
	Title string
	Body  template.HTML
	Cards []card
}

type card struct {
	Lines []cardLine
}

type cardLine struct {
	Label string
	Value template.HTML
}

type documentData struct {
	Title       string
	Language    string
	LanguageTag string
	GeneratedAt string
	Sections    []section
}

var documentTmpl = template.Must(template.New("guide").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8" />
<title>{{.Title}} - LangNerd</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; background-color: #05070f; color: #f5f6fb; margin: 0; padding: 2rem; }
h1 { color: #63d2ff; }
h2 { color: #ff914d; border-bottom: 1px solid rgba(255,255,255,0.1); padding-bottom: .3rem; }
.meta { color: #9fb3ff; font-size: 0.9rem; margin-bottom: 2rem; }
.block { margin-bottom: 1.5rem; }
ul { padding-left: 1.3rem; }
li { margin-bottom: .5rem; }
.muted { color: #a3b2d4; }
.card { border: 1px solid rgba(255,255,255,0.1); border-radius: 12px; padding: 1rem; margin-bottom: 1rem; }
sup a { color: #63d2ff; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated with LangNerd &bull; {{.GeneratedAt}} &bull; Language: {{.LanguageTag}}</div>
{{- range .Sections}}
<section class="block">
<h2>{{.Title}}</h2>
{{- if .Body}}
{{.Body}}
{{- end}}
{{- range .Cards}}
<div class="card">
{{- range .Lines}}
<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

// Write renders the guide and stores it as
// <slug>_<timestamp>_<short-id>.html inside the output directory. The
// short id keeps concurrent exports of the same game from colliding.
func (w *Writer) Write(guide *types.StructuredGuide, language string) (string, error) {
	if guide == nil {
		return "", fmt.Errorf("nil guide")
	}
	if language == "" {
		language = "it"
	}

	data := documentData{
		Title:       guide.GameTitle,
		Language:    language,
		LanguageTag: strings.ToUpper(language),
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Sections:    buildSections(guide),
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering guide document: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.html",
		slugify(guide.GameTitle),
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8])
	path := filepath.Join(w.outputDir, filename)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing guide document: %w", err)
	}
	return path, nil
}

// buildSections mirrors the guide schema in reading order, skipping
// anything empty so the document never renders hollow blocks.
func buildSections(g *types.StructuredGuide) []section {
	var sections []section

	addText := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		sections = append(sections, section{Title: title, Body: template.HTML(body)})
	}

	addText("Quick overview", g.ElevatorPitch)
	addText("Full story", g.StoryOverview)
	addText("World setting", g.WorldSetting)
	addText("Relationships and factions", g.Relationships)

	if cards := characterCards(g.MainCharacters); len(cards) > 0 {
		sections = append(sections, section{Title: "Main characters", Cards: cards})
	}
	if cards := missionCards(g.MissionsAndTips); len(cards) > 0 {
		sections = append(sections, section{Title: "Missions and strategies", Cards: cards})
	}
	if cards := trophyCards(g.Trophies); len(cards) > 0 {
		sections = append(sections, section{Title: "PlayStation trophies", Cards: cards})
	}

	addText("Advanced insights", g.AdvancedInsights)
	return sections
}

func characterCards(chars []types.Character) []card {
	var cards []card
	for _, c := range chars {
		cards = append(cards, card{Lines: cardLines(
			cardLine{"Name", escape(c.Name)},
			cardLine{"Role", template.HTML(c.Role)},
			cardLine{"Description", template.HTML(c.Description)},
		)})
	}
	return cards
}

func missionCards(missions []types.Mission) []card {
	var cards []card
	for _, m := range missions {
		cards = append(cards, card{Lines: cardLines(
			cardLine{"Title", escape(m.Title)},
			cardLine{"Details", template.HTML(m.Details)},
			cardLine{"Strategy", template.HTML(m.Strategy)},
		)})
	}
	return cards
}

func trophyCards(trophies []types.Trophy) []card {
	var cards []card
	for _, t := range trophies {
		cards = append(cards, card{Lines: cardLines(
			cardLine{"Name", escape(t.Name)},
			cardLine{"Tier", escape(t.Tier)},
			cardLine{"Description", template.HTML(t.Description)},
			cardLine{"Tips", template.HTML(t.Tips)},
		)})
	}
	return cards
}

// cardLines drops empty values so cards stay compact.
func cardLines(lines ...cardLine) []cardLine {
	var kept []cardLine
	for _, l := range lines {
		if strings.TrimSpace(string(l.Value)) != "" {
			kept = append(kept, l)
		}
	}
	return kept
}

// escape prepares a plain-text field for embedding in the document. Names,
// titles and tiers are never HTML-wrapped by the normalizer, so they are
// escaped here.
func escape(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

// slugify lowercases the title and keeps letters, digits and underscores
// so the file name is filesystem safe.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "guide"
	}
	return b.String()
}
