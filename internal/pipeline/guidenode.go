// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/langnerd/internal/guide"
	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/pkg/types"
)

// guide asks the model for the full structured guide and normalizes
// whatever comes back. Unparsable output degrades to an all-placeholder
// payload instead of failing; only a completion transport failure aborts
// the run. The normalizer guarantees the stored guide is fully populated.
func (o *Orchestrator) guide(ctx context.Context, st *types.PipelineState) error {
	language := st.Language
	if language == "" {
		language = o.cfg.DefaultLanguage
	}

	serialized, err := json.Marshal(st.SearchResults)
	if err != nil {
		return fmt.Errorf("serializing search results: %w", err)
	}

	prompt, err := renderGuidePrompt(language, string(serialized), st.Game)
	if err != nil {
		return fmt.Errorf("rendering guide prompt: %w", err)
	}

	raw, err := o.llm.Complete(ctx, llm.Prompt{System: jsonOnlySystem, User: prompt})
	if err != nil {
		return fmt.Errorf("synthesizing guide: %w", err)
	}

	var payload map[string]any
	if !llm.ExtractObject(raw, &payload) {
		o.log.Warn("guide synthesis returned no parsable JSON, using placeholder guide")
		payload = placeholderPayload(st.Game)
	}

	sources := st.Sources
	if len(sources) == 0 {
		sources = st.SearchResults
	}
	st.StructuredGuide = guide.Normalize(payload, st.Game, sources)
	return nil
}

// placeholderPayload is the all-placeholder guide used when the model
// output cannot be parsed. The elevator pitch tells the reader extraction
// failed rather than pretending data is merely missing.
func placeholderPayload(game string) map[string]any {
	return map[string]any{
		"game_title":        orText(game, guide.GenericTitle),
		"elevator_pitch":    "Unable to extract detailed information.",
		"story_overview":    guide.PlaceholderText,
		"world_setting":     guide.PlaceholderText,
		"main_characters":   []any{},
		"relationships":     guide.PlaceholderText,
		"missions_and_tips": []any{},
		"trophies":          []any{},
		"advanced_insights": guide.PlaceholderText,
	}
}
