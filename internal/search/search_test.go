// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/pkg/types"
)

// stubGateway serves canned results per query and records the order in
// which queries arrived.
type stubGateway struct {
	results map[string][]types.SearchResult
	errs    map[string]error
	calls   []string
}

func (s *stubGateway) Search(_ context.Context, query, _ string) ([]types.SearchResult, error) {
	s.calls = append(s.calls, query)
	if err := s.errs[query]; err != nil {
		return nil, err
	}
	return s.results[query], nil
}

func result(title, url string) types.SearchResult {
	return types.SearchResult{Title: title, URL: url, Snippet: title + " snippet"}
}

func TestAggregateDeduplicatesAcrossQueries(t *testing.T) {
	gw := &stubGateway{results: map[string][]types.SearchResult{
		"first": {
			result("A", "https://a.example"),
			result("B", "https://b.example"),
		},
		"second": {
			result("B again", "https://b.example"),
			result("C", "https://c.example"),
		},
	}}

	merged, sources := Aggregate(context.Background(), gw, []string{"first", "second"}, "en", zap.NewNop())

	if len(merged) != 3 {
		t.Fatalf("merged len = %d, want 3", len(merged))
	}
	// First occurrence wins.
	if merged[1].Title != "B" {
		t.Errorf("merged[1].Title = %q, want original B", merged[1].Title)
	}
	if merged[2].URL != "https://c.example" {
		t.Errorf("merged[2].URL = %q", merged[2].URL)
	}
	if len(sources) != 3 {
		t.Errorf("sources len = %d, want 3", len(sources))
	}
}

func TestAggregateSkipsEmptyQueries(t *testing.T) {
	gw := &stubGateway{results: map[string][]types.SearchResult{
		"q": {result("A", "https://a.example")},
	}}

	merged, _ := Aggregate(context.Background(), gw, []string{"", "q", ""}, "en", zap.NewNop())

	if len(gw.calls) != 1 || gw.calls[0] != "q" {
		t.Errorf("calls = %v, want just q", gw.calls)
	}
	if len(merged) != 1 {
		t.Errorf("merged len = %d, want 1", len(merged))
	}
}

func TestAggregateIsolatesQueryFailures(t *testing.T) {
	gw := &stubGateway{
		results: map[string][]types.SearchResult{
			"good": {result("A", "https://a.example")},
		},
		errs: map[string]error{"bad": errors.New("provider down")},
	}

	merged, sources := Aggregate(context.Background(), gw, []string{"bad", "good"}, "en", zap.NewNop())

	if len(gw.calls) != 2 {
		t.Fatalf("calls = %v, want both queries attempted", gw.calls)
	}
	if len(merged) != 1 || merged[0].URL != "https://a.example" {
		t.Errorf("merged = %v", merged)
	}
	if len(sources) != 1 {
		t.Errorf("sources len = %d, want 1", len(sources))
	}
}

func TestAggregateDropsMissingURLs(t *testing.T) {
	gw := &stubGateway{results: map[string][]types.SearchResult{
		"q": {
			{Title: "No link"},
			result("A", "https://a.example"),
		},
	}}

	merged, _ := Aggregate(context.Background(), gw, []string{"q"}, "en", zap.NewNop())

	if len(merged) != 1 || merged[0].Title != "A" {
		t.Errorf("merged = %v, want only the linked result", merged)
	}
}

func TestAggregateCapsSources(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < MaxSources+3; i++ {
		results = append(results, result(fmt.Sprintf("R%d", i), fmt.Sprintf("https://r%d.example", i)))
	}
	gw := &stubGateway{results: map[string][]types.SearchResult{"q": results}}

	merged, sources := Aggregate(context.Background(), gw, []string{"q"}, "en", zap.NewNop())

	if len(merged) != MaxSources+3 {
		t.Errorf("merged len = %d, want all results kept", len(merged))
	}
	if len(sources) != MaxSources {
		t.Errorf("sources len = %d, want %d", len(sources), MaxSources)
	}
	if sources[0].URL != merged[0].URL {
		t.Error("sources must be a prefix of merged")
	}
}
