// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package guide validates and fills loosely-structured guide payloads
// against the fixed StructuredGuide schema.
// See docs/ARCHITECTURE.md § Guide Normalization.
package guide

import (
	"strings"

	"github.com/pdiddy/langnerd/internal/cite"
	"github.com/pdiddy/langnerd/pkg/types"
)

// Placeholder strings substituted when a field cannot be grounded in the
// provided evidence.
const (
	PlaceholderText      = "Data unavailable."
	PlaceholderCharacter = "Unknown character"
	PlaceholderMission   = "Unnamed mission"
	PlaceholderTrophy    = "Unknown trophy"
	PlaceholderTier      = "?"

	// GenericTitle is the last-resort guide title when neither the model
	// nor the caller named the game.
	GenericTitle = "Video game guide"
)

// Normalize coerces an arbitrary guide payload into a fully-populated
// StructuredGuide. Free-text fields are defaulted to PlaceholderText,
// force-wrapped as HTML, and citation-linked against sources. List fields
// keep only record-shaped entries; everything else is dropped silently.
// Trophy tips fall back from "strategy" and tier from "rarity" before the
// defaults apply. Normalize is pure and total: it never fails, and a nil
// payload yields an all-placeholder guide.
func Normalize(raw map[string]any, fallbackTitle string, sources []types.SearchResult) *types.StructuredGuide {
	text := func(key string) string {
		return normalizeText(plainString(raw[key]), sources)
	}

	title := plainString(raw["game_title"])
	if title == "" {
		title = fallbackTitle
	}
	if title == "" {
		title = GenericTitle
	}

	return &types.StructuredGuide{
		GameTitle:        title,
		ElevatorPitch:    text("elevator_pitch"),
		StoryOverview:    text("story_overview"),
		WorldSetting:     text("world_setting"),
		MainCharacters:   normalizeCharacters(raw["main_characters"], sources),
		Relationships:    text("relationships"),
		MissionsAndTips:  normalizeMissions(raw["missions_and_tips"], sources),
		Trophies:         normalizeTrophies(raw["trophies"], sources),
		AdvancedInsights: text("advanced_insights"),
	}
}

// normalizeText substitutes the placeholder for empty text, force-wraps
// plain text as HTML, and links citation markers.
func normalizeText(s string, sources []types.SearchResult) string {
	if s == "" {
		s = PlaceholderText
	}
	return cite.Link(cite.EnsureHTML(s), sources)
}

// plainString returns the value when it is a non-blank string. Wrong-typed
// values count as absent; the caller's default takes over.
func plainString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// records filters a decoded list down to its record-shaped entries.
func records(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func normalizeCharacters(v any, sources []types.SearchResult) []types.Character {
	chars := []types.Character{}
	for _, m := range records(v) {
		name := plainString(m["name"])
		if name == "" {
			name = PlaceholderCharacter
		}
		chars = append(chars, types.Character{
			Name:        name,
			Description: normalizeText(plainString(m["description"]), sources),
			Role:        normalizeText(plainString(m["role"]), sources),
		})
	}
	return chars
}

func normalizeMissions(v any, sources []types.SearchResult) []types.Mission {
	missions := []types.Mission{}
	for _, m := range records(v) {
		title := plainString(m["title"])
		if title == "" {
			title = PlaceholderMission
		}
		missions = append(missions, types.Mission{
			Title:    title,
			Details:  normalizeText(plainString(m["details"]), sources),
			Strategy: normalizeText(plainString(m["strategy"]), sources),
		})
	}
	return missions
}

func normalizeTrophies(v any, sources []types.SearchResult) []types.Trophy {
	trophies := []types.Trophy{}
	for _, m := range records(v) {
		name := plainString(m["name"])
		if name == "" {
			name = PlaceholderTrophy
		}

		tier := plainString(m["tier"])
		if tier == "" {
			tier = plainString(m["rarity"])
		}
		if tier == "" {
			tier = PlaceholderTier
		}

		tips := plainString(m["tips"])
		if tips == "" {
			tips = plainString(m["strategy"])
		}

		trophies = append(trophies, types.Trophy{
			Name:        name,
			Tier:        tier,
			Description: normalizeText(plainString(m["description"]), sources),
			Tips:        normalizeText(tips, sources),
		})
	}
	return trophies
}
