// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pdiddy/langnerd/pkg/types"
)

// completionTemperature keeps synthesis grounded in the provided evidence.
const completionTemperature = 0.2

// Gemini is the Gateway implementation backed by the Google Generative AI
// API. The underlying client pools connections and is safe for concurrent
// use by multiple in-flight requests.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// NewGemini creates a Gemini gateway from the LLM configuration.
func NewGemini(ctx context.Context, cfg types.LLMConfig, log *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

// Complete sends the prompt and returns the concatenated text of the first
// candidate. The call carries its own timeout so a slow model cannot hang
// the request.
func (g *Gemini) Complete(ctx context.Context, p Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](completionTemperature),
	}
	if p.System != "" {
		config.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	started := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), config)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	g.log.Debug("completion finished",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("chars", len(text)))
	return text, nil
}
