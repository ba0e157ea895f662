// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/internal/guide"
	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/pkg/types"
)

// scriptedLLM replays canned completions in order and records every
// prompt it received.
type scriptedLLM struct {
	replies []string
	err     error
	prompts []llm.Prompt
}

func (s *scriptedLLM) Complete(_ context.Context, p llm.Prompt) (string, error) {
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// fixedSearch returns the same results for every query.
type fixedSearch struct {
	results []types.SearchResult
	queries []string
}

func (f *fixedSearch) Search(_ context.Context, query, _ string) ([]types.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, nil
}

type stubWriter struct {
	path  string
	err   error
	guide *types.StructuredGuide
}

func (w *stubWriter) Write(g *types.StructuredGuide, _ string) (string, error) {
	w.guide = g
	return w.path, w.err
}

func newTestOrchestrator(gw llm.Gateway, sg *fixedSearch, w DocumentWriter) *Orchestrator {
	return New(gw, sg, w, types.Defaults(), zap.NewNop())
}

func twoStubResults() []types.SearchResult {
	return []types.SearchResult{
		{Title: "Boss guide", URL: "https://example.com/boss", Snippet: "how to win"},
		{Title: "Walkthrough", URL: "https://example.com/walkthrough", Snippet: "full path"},
	}
}

func TestNextTransitions(t *testing.T) {
	tests := []struct {
		name    string
		mode    types.Mode
		current step
		want    step
	}{
		{"classify to search", types.ModeQA, stepClassify, stepSearch},
		{"search to answer in qa", types.ModeQA, stepSearch, stepAnswer},
		{"search to guide in guide mode", types.ModeGuide, stepSearch, stepGuide},
		{"answer ends", types.ModeQA, stepAnswer, stepDone},
		{"guide exports", types.ModeGuide, stepGuide, stepExport},
		{"export ends", types.ModeGuide, stepExport, stepDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &types.PipelineState{Mode: tt.mode}
			if got := next(st, tt.current); got != tt.want {
				t.Errorf("next(%v, %v) = %v, want %v", tt.mode, tt.current, got, tt.want)
			}
		})
	}
}

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name            string
		question        string
		game            string
		focus           string
		includeTrophies bool
		want            []string
	}{
		{
			name:     "qa with game and focus",
			question: "How do I beat the final boss?",
			game:     "ExampleGame",
			focus:    "bosses",
			want: []string{
				"How do I beat the final boss?",
				"ExampleGame complete storyline",
				"ExampleGame missions walkthrough",
				"ExampleGame bosses",
			},
		},
		{
			name:     "question only",
			question: "best RPG of 2024",
			want:     []string{"best RPG of 2024"},
		},
		{
			name:            "guide mode adds trophies",
			game:            "ExampleGame",
			includeTrophies: true,
			want: []string{
				"ExampleGame complete storyline",
				"ExampleGame missions walkthrough",
				"ExampleGame PlayStation trophy list",
			},
		},
		{
			name:            "trophies require a game",
			question:        "q",
			includeTrophies: true,
			want:            []string{"q"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQueries(tt.question, tt.game, tt.focus, tt.includeTrophies)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildQueries = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunQAEndToEnd(t *testing.T) {
	gw := &scriptedLLM{replies: []string{"Devi colpire il punto debole del boss [1]."}}
	sg := &fixedSearch{results: twoStubResults()}
	orc := newTestOrchestrator(gw, sg, &stubWriter{})

	result, err := orc.RunQA(context.Background(), QAInput{
		Question: "Come sconfiggo il boss finale?",
		Game:     "ExampleGame",
	})
	if err != nil {
		t.Fatalf("RunQA: %v", err)
	}

	if !strings.Contains(result.Answer, `href="https://example.com/boss"`) {
		t.Errorf("answer not linked to first source: %q", result.Answer)
	}
	if !strings.Contains(result.Answer, "<sup>") {
		t.Errorf("citation not superscripted: %q", result.Answer)
	}
	if len(result.Sources) != 2 {
		t.Errorf("sources len = %d, want 2", len(result.Sources))
	}
	// Mode is preset, so the classify node must not consult the model.
	if len(gw.prompts) != 1 {
		t.Errorf("model calls = %d, want 1 (answer only)", len(gw.prompts))
	}
	if sg.queries[0] != "Come sconfiggo il boss finale?" {
		t.Errorf("first query = %q", sg.queries[0])
	}
}

func TestRunQACompletionFailurePropagates(t *testing.T) {
	gw := &scriptedLLM{err: errors.New("model unavailable")}
	sg := &fixedSearch{results: twoStubResults()}
	orc := newTestOrchestrator(gw, sg, &stubWriter{})

	if _, err := orc.RunQA(context.Background(), QAInput{Question: "q"}); err == nil {
		t.Fatal("expected completion failure to abort the run")
	}
}

func TestRunGuideEndToEnd(t *testing.T) {
	gw := &scriptedLLM{replies: []string{`{
		"game_title": "ExampleGame",
		"elevator_pitch": "A sweeping adventure [1].",
		"story_overview": "The hero rises.",
		"main_characters": [{"name": "Aria", "description": "Protagonist", "role": "Hero"}]
	}`}}
	sg := &fixedSearch{results: twoStubResults()}
	writer := &stubWriter{path: "generated/examplegame.html"}
	orc := newTestOrchestrator(gw, sg, writer)

	result, err := orc.RunGuide(context.Background(), GuideInput{Game: "ExampleGame"})
	if err != nil {
		t.Fatalf("RunGuide: %v", err)
	}

	if result.ExportPath != "generated/examplegame.html" {
		t.Errorf("ExportPath = %q", result.ExportPath)
	}
	if result.Guide.GameTitle != "ExampleGame" {
		t.Errorf("GameTitle = %q", result.Guide.GameTitle)
	}
	if !strings.Contains(result.Guide.ElevatorPitch, `href="https://example.com/boss"`) {
		t.Errorf("pitch citation not linked: %q", result.Guide.ElevatorPitch)
	}
	if len(result.Guide.MainCharacters) != 1 || result.Guide.MainCharacters[0].Name != "Aria" {
		t.Errorf("characters = %v", result.Guide.MainCharacters)
	}
	// Untouched fields come back as placeholders, never empty.
	if result.Guide.WorldSetting == "" {
		t.Error("WorldSetting must be placeholder-filled")
	}
	if writer.guide != result.Guide {
		t.Error("exported guide must be the normalized guide")
	}
}

func TestRunGuideUnparsableOutput(t *testing.T) {
	gw := &scriptedLLM{replies: []string{"I could not produce JSON, sorry."}}
	sg := &fixedSearch{results: twoStubResults()}
	writer := &stubWriter{path: "generated/fallback.html"}
	orc := newTestOrchestrator(gw, sg, writer)

	result, err := orc.RunGuide(context.Background(), GuideInput{Game: "ExampleGame"})
	if err != nil {
		t.Fatalf("RunGuide: %v", err)
	}

	if result.Guide.GameTitle != "ExampleGame" {
		t.Errorf("GameTitle = %q", result.Guide.GameTitle)
	}
	if !strings.Contains(result.Guide.ElevatorPitch, "Unable to extract detailed information.") {
		t.Errorf("pitch = %q, want extraction-failure notice", result.Guide.ElevatorPitch)
	}
	if result.ExportPath == "" {
		t.Error("placeholder guide must still be exported")
	}
}

func TestRunGuideWriterFailure(t *testing.T) {
	gw := &scriptedLLM{replies: []string{`{"game_title": "G"}`}}
	sg := &fixedSearch{results: twoStubResults()}

	t.Run("write error", func(t *testing.T) {
		orc := newTestOrchestrator(gw, sg, &stubWriter{err: errors.New("disk full")})
		if _, err := orc.RunGuide(context.Background(), GuideInput{Game: "G"}); err == nil {
			t.Fatal("expected writer failure to abort the run")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		gw.replies = []string{`{"game_title": "G"}`}
		orc := newTestOrchestrator(gw, sg, &stubWriter{})
		if _, err := orc.RunGuide(context.Background(), GuideInput{Game: "G"}); err == nil {
			t.Fatal("expected empty export path to abort the run")
		}
	})
}

func TestRunClassifiesGuideRequests(t *testing.T) {
	gw := &scriptedLLM{replies: []string{
		`{"mode": "guide", "language": "it", "game": "ExampleGame", "search_queries": ["ExampleGame storia"]}`,
		`{"game_title": "ExampleGame"}`,
	}}
	sg := &fixedSearch{results: twoStubResults()}
	writer := &stubWriter{path: "generated/g.html"}
	orc := newTestOrchestrator(gw, sg, writer)

	st, err := orc.Run(context.Background(), "Fammi una guida completa di ExampleGame", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Mode != types.ModeGuide {
		t.Errorf("Mode = %q, want guide", st.Mode)
	}
	if st.Language != "it" {
		t.Errorf("Language = %q", st.Language)
	}
	if st.StructuredGuide == nil || st.ExportPath == "" {
		t.Error("guide branch must normalize and export")
	}
	if sg.queries[0] != "ExampleGame storia" {
		t.Errorf("planned query = %q, want the classifier's", sg.queries[0])
	}
}

func TestRunClassificationFallback(t *testing.T) {
	gw := &scriptedLLM{replies: []string{
		"not json at all",
		"Plain answer without citations.",
	}}
	sg := &fixedSearch{results: twoStubResults()}
	orc := newTestOrchestrator(gw, sg, &stubWriter{})

	st, err := orc.Run(context.Background(), "che gioco è questo?", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Mode != types.ModeQA {
		t.Errorf("Mode = %q, want qa fallback", st.Mode)
	}
	if st.Language != "it" {
		t.Errorf("Language = %q, want default", st.Language)
	}
	if sg.queries[0] != "che gioco è questo?" {
		t.Errorf("fallback query = %q, want the raw query", sg.queries[0])
	}
	if st.Answer == "" {
		t.Error("qa fallback must still answer")
	}
}

func TestAnswerLinksAgainstResultsWhenSourcesEmpty(t *testing.T) {
	orc := newTestOrchestrator(&scriptedLLM{}, &fixedSearch{}, &stubWriter{})
	st := &types.PipelineState{
		Query:         "q",
		Mode:          types.ModeQA,
		SearchResults: twoStubResults(),
	}
	orcLLM := &scriptedLLM{replies: []string{"See [2] for details."}}
	orc.llm = orcLLM

	if err := orc.answer(context.Background(), st); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !strings.Contains(st.Answer, `href="https://example.com/walkthrough"`) {
		t.Errorf("answer = %q, want link to second result", st.Answer)
	}
}

func TestGuideNeverLeavesNilGuide(t *testing.T) {
	gw := &scriptedLLM{replies: []string{"garbage"}}
	orc := newTestOrchestrator(gw, &fixedSearch{}, &stubWriter{})
	st := &types.PipelineState{Mode: types.ModeGuide, Game: ""}

	if err := orc.guide(context.Background(), st); err != nil {
		t.Fatalf("guide: %v", err)
	}
	if st.StructuredGuide == nil {
		t.Fatal("guide must always be populated")
	}
	if st.StructuredGuide.GameTitle != guide.GenericTitle {
		t.Errorf("GameTitle = %q, want generic fallback", st.StructuredGuide.GameTitle)
	}
}
