// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LLMConfig holds settings for the text-completion gateway.
type LLMConfig struct {
	// Model is the Gemini model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the Google Generative AI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds each completion call (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SearchConfig holds settings for the web-search gateway.
type SearchConfig struct {
	// APIKey is the SerpAPI key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Country is the country hint sent to the provider (gl parameter).
	Country string `json:"country" yaml:"country"`

	// Language is the language hint sent to the provider (hl parameter).
	Language string `json:"language" yaml:"language"`

	// MaxResults is how many results to fetch per query. The gateway
	// clamps it to [3, 10].
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Timeout bounds each search call (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ExportConfig holds settings for the HTML document writer.
type ExportConfig struct {
	// OutputDir is the directory for generated guide documents.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all component configurations for the pipeline.
type Config struct {
	// DefaultLanguage is the ISO-639-1 fallback for answers and guides.
	DefaultLanguage string `json:"default_language" yaml:"default_language"`

	LLM    LLMConfig    `json:"llm" yaml:"llm"`
	Search SearchConfig `json:"search" yaml:"search"`
	Export ExportConfig `json:"export" yaml:"export"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// Defaults returns the configuration used when no file or environment
// overrides are present. Language hints default to Italian, matching the
// primary audience of the product.
func Defaults() Config {
	return Config{
		DefaultLanguage: "it",
		LLM: LLMConfig{
			Model:   "gemini-1.5-flash",
			Timeout: 15 * time.Second,
		},
		Search: SearchConfig{
			Country:    "it",
			Language:   "it",
			MaxResults: 6,
			Timeout:    15 * time.Second,
		},
		Export: ExportConfig{
			OutputDir: "generated",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
