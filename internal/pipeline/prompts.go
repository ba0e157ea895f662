// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/langnerd/pkg/types"
)

// jsonOnlySystem is the system instruction used whenever the pipeline
// expects strict JSON back.
const jsonOnlySystem = "Respond only with valid JSON."

// classifyPromptTmpl asks the model to route the request and propose
// search queries. The response contract is strict JSON.
var classifyPromptTmpl = template.Must(template.New("classify").Parse(`Act as the senior orchestrator of LangNerd, a video game guide platform. Analyze the request below and choose whether to activate "qa" mode (a focused answer) or "guide" mode (a structured document with story, missions, trophies).
Return ONLY valid JSON with exactly these keys:
{"mode": "qa"|"guide", "language": "<ISO-639-1 code>", "game": "<title or null>", "search_queries": ["query 1", "..."]}
Rules: 1) If the user asks for complete tutorials, overviews or PDFs, set mode to "guide"; 2) set language to the language the user writes in (fallback "it"); 3) generate at least 3 complementary queries (title + storyline, missions, trophies/focus) with no duplicates; 4) add no text outside the JSON.
User question: {{.Query}}
Game hint: {{.Game}}
Requested focus: {{.Focus}}
`))

// answerPromptTmpl instructs the model to synthesize a cited HTML answer
// strictly from the context block.
var answerPromptTmpl = template.Must(template.New("answer").Parse(`You are the LangNerd Response Engine, a video game specialist. Answer in {{.Language}} and follow these strict rules:
1) Use ONLY verifiable data from the provided context; if information is missing, state it.
2) Open with a short executive summary (2 sentences maximum) focused on the question.
3) Give operational instructions as numbered steps with strictly relevant practical tips.
4) Highlight any prerequisites (level, items, recommended builds) in a bulleted list.
5) Close every paragraph by citing at least one source in the form [n], matching the IDs below.
6) Return the entire answer as valid semantic HTML fragments (use <section>, <ol>, <ul>, <li>, <strong>, etc.), never a full document.
7) Do not invent URLs or information; ignore off-topic content.

Verified context:
{{.Context}}

Final question (keep the answer strictly on topic): {{.Query}}
`))

// guidePromptTmpl instructs the model to build the full structured guide
// from the serialized search results. The JSON schema is spelled out
// verbatim so the response can be validated against it.
var guidePromptTmpl = template.Must(template.New("guide").Parse(`Act as the editor-in-chief of LangNerd and build a complete game guide based on the JSON search results provided. Follow these guidelines rigorously:
- Use ONLY information corroborated by the sources; where data is missing, write "Data unavailable.".
- Keep a professional but accessible tone, always in language {{.Language}}.
- story_overview must be an extremely detailed narrative summary (minimum 200 words) covering context, main events, plot twists and consequences.
- missions_and_tips must contain at least 6 entries with descriptive titles: each entry includes mission details and a step-by-step operational strategy with build/item suggestions.
- trophies must contain at least 10 PlayStation trophies with the correct tier, a description of the objective and concrete advice on earning them quickly (cite farming spots, requirements, missable conditions).
- main_characters must include the main protagonists and antagonists with their role in the story and relevant synergies or conflicts.
- relationships and advanced_insights must highlight factions, alliances, counter-strategies and meta builds.
- Return exclusively valid JSON with this exact structure:
{
  "game_title": str,
  "elevator_pitch": str,
  "story_overview": str,
  "world_setting": str,
  "main_characters": [{"name": str, "description": str, "role": str}],
  "relationships": str,
  "missions_and_tips": [{"title": str, "details": str, "strategy": str}],
  "trophies": [{"name": str, "tier": str, "description": str, "tips": str}],
  "advanced_insights": str
}
JSON sources:
{{.Sources}}
Reference game: {{.Game}}
`))

// renderClassifyPrompt fills the classify template from the state.
func renderClassifyPrompt(st *types.PipelineState) (string, error) {
	data := struct{ Query, Game, Focus string }{
		Query: st.Query,
		Game:  orText(st.Game, "not specified"),
		Focus: orText(st.Focus, "none"),
	}
	return render(classifyPromptTmpl, data)
}

// renderAnswerPrompt fills the answer template with the evidence block.
func renderAnswerPrompt(language, contextBlock, query string) (string, error) {
	data := struct{ Language, Context, Query string }{
		Language: language,
		Context:  contextBlock,
		Query:    query,
	}
	return render(answerPromptTmpl, data)
}

// renderGuidePrompt fills the guide template with serialized results.
func renderGuidePrompt(language, serialized, game string) (string, error) {
	data := struct{ Language, Sources, Game string }{
		Language: language,
		Sources:  serialized,
		Game:     orText(game, "not specified"),
	}
	return render(guidePromptTmpl, data)
}

// contextBlock enumerates search results as numbered evidence, 1-indexed
// in merged order so citation indices line up with the sources prefix.
func contextBlock(results []types.SearchResult) string {
	if len(results) == 0 {
		return "No verified sources."
	}
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("[%d] %s - %s\nExcerpt: %s", i+1, r.Title, r.URL, r.Snippet))
	}
	return strings.Join(blocks, "\n\n")
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
