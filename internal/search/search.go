// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web-search provider and merges evidence across
// queries into a single deduplicated sequence.
// See docs/ARCHITECTURE.md § Search.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/pkg/types"
)

// MaxSources is how many results are exposed for citation. Citation
// marker [n] resolves against the first MaxSources merged results.
const MaxSources = 6

// Gateway issues one query against a web-search provider. The language is
// per-request (it follows the classified request language); country and
// result limits come from configuration. Implementations must be safe for
// concurrent use.
type Gateway interface {
	Search(ctx context.Context, query, language string) ([]types.SearchResult, error)
}

// Aggregate issues every non-empty query in order and merges the results,
// deduplicating by URL across all queries with first occurrence winning.
// A gateway failure for one query is logged and treated as zero results
// for that query; it never aborts the others. The second return value is
// the sources prefix: the first MaxSources merged results.
func Aggregate(ctx context.Context, gw Gateway, queries []string, language string, log *zap.Logger) ([]types.SearchResult, []types.SearchResult) {
	seen := make(map[string]bool)
	var merged []types.SearchResult

	for _, query := range queries {
		if query == "" {
			continue
		}
		results, err := gw.Search(ctx, query, language)
		if err != nil {
			log.Warn("search query failed",
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			merged = append(merged, r)
		}
	}

	sources := merged
	if len(sources) > MaxSources {
		sources = sources[:MaxSources]
	}
	return merged, sources
}
