// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StructuredGuide is the fixed-schema guide payload produced by the guide
// branch. After normalization every text field is non-empty HTML (absent
// values carry the "data unavailable" placeholder) and every list holds
// only fully-populated records.
type StructuredGuide struct {
	GameTitle        string      `json:"game_title" yaml:"game_title"`
	ElevatorPitch    string      `json:"elevator_pitch" yaml:"elevator_pitch"`
	StoryOverview    string      `json:"story_overview" yaml:"story_overview"`
	WorldSetting     string      `json:"world_setting" yaml:"world_setting"`
	MainCharacters   []Character `json:"main_characters" yaml:"main_characters"`
	Relationships    string      `json:"relationships" yaml:"relationships"`
	MissionsAndTips  []Mission   `json:"missions_and_tips" yaml:"missions_and_tips"`
	Trophies         []Trophy    `json:"trophies" yaml:"trophies"`
	AdvancedInsights string      `json:"advanced_insights" yaml:"advanced_insights"`
}

// Character is one protagonist or antagonist entry.
type Character struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Role        string `json:"role" yaml:"role"`
}

// Mission is one mission entry with an operational strategy.
type Mission struct {
	Title    string `json:"title" yaml:"title"`
	Details  string `json:"details" yaml:"details"`
	Strategy string `json:"strategy" yaml:"strategy"`
}

// Trophy is one achievement entry. Tier is the trophy tier (bronze, silver,
// gold, platinum) or "?" when the model did not provide one.
type Trophy struct {
	Name        string `json:"name" yaml:"name"`
	Tier        string `json:"tier" yaml:"tier"`
	Description string `json:"description" yaml:"description"`
	Tips        string `json:"tips" yaml:"tips"`
}
