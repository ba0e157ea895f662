// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/pkg/types"
)

// classification is the strict JSON contract of the classify prompt.
type classification struct {
	Mode          string   `json:"mode"`
	Language      string   `json:"language"`
	Game          string   `json:"game"`
	SearchQueries []string `json:"search_queries"`
}

// classify infers mode, language, game and search queries from the raw
// query. A pre-set mode short-circuits the node: the state passes through
// untouched. Malformed model output never propagates; the node falls back
// to qa mode, the default language and the query itself. Only a gateway
// transport failure aborts the run.
func (o *Orchestrator) classify(ctx context.Context, st *types.PipelineState) error {
	if st.Mode != "" {
		return nil
	}

	prompt, err := renderClassifyPrompt(st)
	if err != nil {
		return fmt.Errorf("rendering classify prompt: %w", err)
	}

	raw, err := o.llm.Complete(ctx, llm.Prompt{System: jsonOnlySystem, User: prompt})
	if err != nil {
		return fmt.Errorf("classifying request: %w", err)
	}

	var c classification
	if !llm.ExtractObject(raw, &c) {
		o.log.Warn("classification returned no parsable JSON, defaulting to qa")
		st.Mode = types.ModeQA
		if st.Language == "" {
			st.Language = o.cfg.DefaultLanguage
		}
		st.SearchQueries = []string{st.Query}
		return nil
	}

	st.Mode = types.Mode(orText(c.Mode, string(types.ModeQA)))
	st.Language = orText(c.Language, orText(st.Language, o.cfg.DefaultLanguage))
	st.Game = orText(c.Game, st.Game)
	if len(c.SearchQueries) > 0 {
		st.SearchQueries = c.SearchQueries
	} else {
		st.SearchQueries = []string{st.Query}
	}
	return nil
}
