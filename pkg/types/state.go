// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the langnerd pipeline.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// Mode selects the pipeline branch after search.
type Mode string

const (
	// ModeQA produces a short, source-grounded HTML answer.
	ModeQA Mode = "qa"

	// ModeGuide produces a long structured guide plus an HTML export.
	ModeGuide Mode = "guide"
)

// SearchResult is one piece of web evidence. URL is the unique key used
// for deduplication across queries.
type SearchResult struct {
	// Title is the result title or site name.
	Title string `json:"title" yaml:"title"`

	// URL is the source URL.
	URL string `json:"url" yaml:"url"`

	// Snippet is a short preview text, when the provider returned one.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// PipelineState is the single record threaded through the pipeline. It is
// created once per request, mutated in place by each node, and discarded
// after the orchestrator returns. Fields are zero until the node that
// produces them has run; no node reads state produced after it runs.
type PipelineState struct {
	// Query is the effective search/answer seed string.
	Query string `json:"query" yaml:"query"`

	// Game, Focus and Extra are user-supplied hints.
	Game  string `json:"game,omitempty" yaml:"game,omitempty"`
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`
	Extra string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Language is an ISO-639-1 code. Defaults to the configured default
	// language when neither the caller nor the classifier sets it.
	Language string `json:"language" yaml:"language"`

	// Mode selects the branch. May be pre-set by the caller or inferred
	// by the classify node.
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// SearchQueries are the queries the search node issues, in order.
	SearchQueries []string `json:"search_queries,omitempty" yaml:"search_queries,omitempty"`

	// SearchResults is the merged evidence, deduplicated by URL, ordered
	// by first occurrence across queries in submission order.
	SearchResults []SearchResult `json:"search_results,omitempty" yaml:"search_results,omitempty"`

	// Sources is the prefix of SearchResults (at most 6) exposed for
	// citation. Citation marker [n] always resolves against Sources[n-1].
	Sources []SearchResult `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Answer is the synthesized HTML answer (qa branch only).
	Answer string `json:"answer,omitempty" yaml:"answer,omitempty"`

	// StructuredGuide is the normalized guide payload (guide branch only).
	StructuredGuide *StructuredGuide `json:"structured_guide,omitempty" yaml:"structured_guide,omitempty"`

	// ExportPath is where the document writer stored the HTML export
	// (guide branch only).
	ExportPath string `json:"export_path,omitempty" yaml:"export_path,omitempty"`
}
