// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the fixed multi-step workflow that turns a
// video game request into a cited answer or a structured guide:
// classify → search → {answer | guide} → {end | export} → end.
// See docs/ARCHITECTURE.md § Pipeline Interface.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/internal/search"
	"github.com/pdiddy/langnerd/pkg/types"
)

// DocumentWriter serializes a structured guide to a static HTML file and
// returns the path it wrote.
type DocumentWriter interface {
	Write(guide *types.StructuredGuide, language string) (string, error)
}

// Orchestrator owns the gateways and drives the node sequence. It holds no
// per-request state; a single Orchestrator serves concurrent requests.
type Orchestrator struct {
	llm    llm.Gateway
	search search.Gateway
	writer DocumentWriter
	cfg    types.Config
	log    *zap.Logger
}

// New wires the gateways and the document writer into an orchestrator.
func New(gw llm.Gateway, sg search.Gateway, writer DocumentWriter, cfg types.Config, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		llm:    gw,
		search: sg,
		writer: writer,
		cfg:    cfg,
		log:    log,
	}
}

// step identifies one node of the pipeline's finite sequence.
type step int

const (
	stepClassify step = iota
	stepSearch
	stepAnswer
	stepGuide
	stepExport
	stepDone
)

// next is the transition function of the pipeline. It is pure: the only
// branch is after search, where the mode selects the answer or guide path.
func next(st *types.PipelineState, current step) step {
	switch current {
	case stepClassify:
		return stepSearch
	case stepSearch:
		if st.Mode == types.ModeGuide {
			return stepGuide
		}
		return stepAnswer
	case stepGuide:
		return stepExport
	default:
		return stepDone
	}
}

// run drives the state through the node sequence until done. The first
// node error aborts the run; no intermediate output leaks to the caller.
func (o *Orchestrator) run(ctx context.Context, st *types.PipelineState) error {
	for s := stepClassify; s != stepDone; s = next(st, s) {
		var err error
		switch s {
		case stepClassify:
			err = o.classify(ctx, st)
		case stepSearch:
			o.searchNode(ctx, st)
		case stepAnswer:
			err = o.answer(ctx, st)
		case stepGuide:
			err = o.guide(ctx, st)
		case stepExport:
			err = o.export(st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// searchNode issues every planned query and merges the evidence. Failed
// queries contribute zero results and never abort the run.
func (o *Orchestrator) searchNode(ctx context.Context, st *types.PipelineState) {
	queries := st.SearchQueries
	if len(queries) == 0 {
		queries = []string{st.Query}
	}
	language := st.Language
	if language == "" {
		language = o.cfg.Search.Language
	}
	st.SearchResults, st.Sources = search.Aggregate(ctx, o.search, queries, language, o.log)
}

// export hands the guide to the document writer and records the path.
func (o *Orchestrator) export(st *types.PipelineState) error {
	language := st.Language
	if language == "" {
		language = o.cfg.DefaultLanguage
	}
	path, err := o.writer.Write(st.StructuredGuide, language)
	if err != nil {
		return fmt.Errorf("exporting guide: %w", err)
	}
	if path == "" {
		return fmt.Errorf("document writer returned no path")
	}
	st.ExportPath = path
	return nil
}

// QAInput is the request for a focused question-and-answer run.
type QAInput struct {
	Question string
	Game     string
	Focus    string
	Language string
}

// QAResult is the outcome of a question-and-answer run.
type QAResult struct {
	Answer  string               `json:"answer" yaml:"answer"`
	Sources []types.SearchResult `json:"sources" yaml:"sources"`
}

// GuideInput is the request for a full structured guide run.
type GuideInput struct {
	Game     string
	Focus    string
	Extra    string
	Language string
}

// GuideResult is the outcome of a guide run.
type GuideResult struct {
	Guide      *types.StructuredGuide `json:"guide" yaml:"guide"`
	Sources    []types.SearchResult   `json:"sources" yaml:"sources"`
	ExportPath string                 `json:"export_path,omitempty" yaml:"export_path,omitempty"`
}

// RunQA answers a focused question about a game, grounded in fresh web
// evidence, and returns the cited HTML answer with its sources.
func (o *Orchestrator) RunQA(ctx context.Context, in QAInput) (*QAResult, error) {
	st := &types.PipelineState{
		Query:         in.Question,
		Game:          in.Game,
		Focus:         in.Focus,
		Language:      orText(in.Language, o.cfg.DefaultLanguage),
		Mode:          types.ModeQA,
		SearchQueries: buildQueries(in.Question, in.Game, in.Focus, false),
	}
	if err := o.run(ctx, st); err != nil {
		return nil, err
	}
	return &QAResult{Answer: st.Answer, Sources: st.Sources}, nil
}

// RunGuide produces the full structured guide for a game, normalized and
// exported as a standalone HTML document.
func (o *Orchestrator) RunGuide(ctx context.Context, in GuideInput) (*GuideResult, error) {
	seed := strings.TrimSpace(fmt.Sprintf("%s video game %s", in.Game, in.Focus))
	st := &types.PipelineState{
		Query:         seed,
		Game:          in.Game,
		Focus:         in.Focus,
		Extra:         in.Extra,
		Language:      orText(in.Language, o.cfg.DefaultLanguage),
		Mode:          types.ModeGuide,
		SearchQueries: buildQueries("", in.Game, in.Focus, true),
	}
	if err := o.run(ctx, st); err != nil {
		return nil, err
	}
	return &GuideResult{
		Guide:      st.StructuredGuide,
		Sources:    st.Sources,
		ExportPath: st.ExportPath,
	}, nil
}

// Run processes a raw query with no preselected mode: the classify node
// decides the branch and plans the queries. It returns the final state.
func (o *Orchestrator) Run(ctx context.Context, query, language string) (*types.PipelineState, error) {
	st := &types.PipelineState{
		Query:    query,
		Language: language,
	}
	if err := o.run(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// buildQueries plans the initial search queries for a preset-mode run.
// Empty entries are filtered so the search node can skip nothing.
func buildQueries(question, game, focus string, includeTrophies bool) []string {
	var queries []string
	if question != "" {
		queries = append(queries, question)
	}
	if game != "" {
		queries = append(queries,
			game+" complete storyline",
			game+" missions walkthrough")
	}
	if includeTrophies && game != "" {
		queries = append(queries, game+" PlayStation trophy list")
	}
	if focus != "" {
		queries = append(queries, strings.TrimSpace(game+" "+focus))
	}
	return queries
}
