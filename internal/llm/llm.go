// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides the text-completion gateway contract, the Gemini
// implementation, and helpers for recovering structured data from
// free-form model output.
// See docs/ARCHITECTURE.md § Gateways.
package llm

import "context"

// Prompt is one completion request. Multi-segment response formats are the
// adapter's concern; the pipeline always receives plain text.
type Prompt struct {
	// System is an optional system instruction.
	System string

	// User is the user-turn prompt text.
	User string
}

// Gateway sends a prompt to a generative text model and returns the raw
// response text. Implementations must be safe for concurrent use and must
// bound each call with their own timeout. Each pipeline node performs at
// most one completion call per run.
type Gateway interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}
