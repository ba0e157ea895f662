// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/langnerd/internal/httputil"
	"github.com/pdiddy/langnerd/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search"

// untitledResult replaces a missing title in provider output.
const untitledResult = "Untitled result"

// SerpAPI queries Google results through SerpAPI.
type SerpAPI struct {
	apiKey     string
	country    string
	language   string
	maxResults int
	client     *http.Client
}

// NewSerpAPI creates a SerpAPI gateway from the search configuration.
func NewSerpAPI(cfg types.SearchConfig) *SerpAPI {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SerpAPI{
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		language:   cfg.Language,
		maxResults: cfg.MaxResults,
		client:     &http.Client{Timeout: timeout},
	}
}

// serpResponse is the subset of the SerpAPI payload the pipeline consumes.
type serpResponse struct {
	OrganicResults []serpOrganicResult `json:"organic_results"`
}

type serpOrganicResult struct {
	Title                   string   `json:"title"`
	Link                    string   `json:"link"`
	URL                     string   `json:"url"`
	Snippet                 string   `json:"snippet"`
	SnippetHighlightedWords []string `json:"snippet_highlighted_words"`
	Description             string   `json:"description"`
}

// Search issues one Google query and returns cleaned results. The result
// count requested from the provider is clamped to [3, 10]. Entries with
// no URL are dropped and duplicate URLs within the response are skipped.
func (s *SerpAPI) Search(ctx context.Context, query, language string) ([]types.SearchResult, error) {
	if query == "" {
		return nil, nil
	}
	if language == "" {
		language = s.language
	}

	num := s.maxResults
	if num < 3 {
		num = 3
	}
	if num > 10 {
		num = 10
	}

	params := url.Values{
		"engine":  {"google"},
		"q":       {query},
		"gl":      {s.country},
		"hl":      {language},
		"num":     {strconv.Itoa(num)},
		"api_key": {s.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 1)
	if err != nil {
		return nil, fmt.Errorf("SerpAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI returned HTTP %d", resp.StatusCode)
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing SerpAPI response: %w", err)
	}

	seen := make(map[string]bool)
	var cleaned []types.SearchResult
	for _, item := range sr.OrganicResults {
		link := item.Link
		if link == "" {
			link = item.URL
		}
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true

		cleaned = append(cleaned, types.SearchResult{
			Title:   titleOrDefault(item.Title),
			URL:     link,
			Snippet: snippetOf(item),
		})
		if len(cleaned) >= num {
			break
		}
	}
	return cleaned, nil
}

func titleOrDefault(title string) string {
	if title == "" {
		return untitledResult
	}
	return title
}

// snippetOf picks the best available preview text for a result.
func snippetOf(item serpOrganicResult) string {
	if item.Snippet != "" {
		return item.Snippet
	}
	if len(item.SnippetHighlightedWords) > 0 {
		return strings.Join(item.SnippetHighlightedWords, " ")
	}
	return item.Description
}
