// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/langnerd/internal/cite"
	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/pkg/types"
)

// answer synthesizes a cited HTML answer from the merged evidence. The
// context block enumerates all merged results 1-indexed; citations are
// linked against the sources prefix, whose indices coincide with the
// first entries of the block. A completion failure aborts the run.
func (o *Orchestrator) answer(ctx context.Context, st *types.PipelineState) error {
	language := st.Language
	if language == "" {
		language = o.cfg.DefaultLanguage
	}

	prompt, err := renderAnswerPrompt(language, contextBlock(st.SearchResults), st.Query)
	if err != nil {
		return fmt.Errorf("rendering answer prompt: %w", err)
	}

	raw, err := o.llm.Complete(ctx, llm.Prompt{User: prompt})
	if err != nil {
		return fmt.Errorf("synthesizing answer: %w", err)
	}

	sources := st.Sources
	if len(sources) == 0 {
		sources = st.SearchResults
	}
	st.Answer = cite.Link(cite.EnsureHTML(raw), sources)
	return nil
}
