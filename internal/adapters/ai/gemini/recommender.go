// Package gemini wraps the Google GenAI client to produce optional
// free-text connection recommendations from a scored pair. The scoring
// pipeline never depends on this collaborator; any failure here degrades
// to the heuristic result alone.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rapporthq/rapport/internal/domain/model"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 10 * time.Second
)

// Recommender generates supplementary recommendation text for a score
// result.
type Recommender struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithModel overrides the model name.
func WithModel(name string) Option {
	return func(r *Recommender) {
		if strings.TrimSpace(name) != "" {
			r.modelName = name
		}
	}
}

// WithTimeout bounds each generation call.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Recommender) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// New creates a Recommender configured for the Gemini API backend.
func New(ctx context.Context, apiKey string, opts ...Option) (*Recommender, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	r := &Recommender{
		client:    client,
		modelName: defaultModel,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Model returns the configured model name.
func (r *Recommender) Model() string {
	if r == nil {
		return ""
	}
	return r.modelName
}

// Recommend turns a score result into one short recommendation sentence.
func (r *Recommender) Recommend(ctx context.Context, result model.ScoreResult) (string, error) {
	if r == nil || r.client == nil {
		return "", errors.New("gemini recommender is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Models.GenerateContent(ctx, r.modelName, genai.Text(buildPrompt(result)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

// buildPrompt renders the heuristic outcome as a compact prompt. The model
// only rephrases; it never changes the score or tier.
func buildPrompt(result model.ScoreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Two professionals scored %.1f/100 (%s) for mutual networking value.\n", result.Score, result.Tier)
	if len(result.Explanation) > 0 {
		b.WriteString("Top factors:\n")
		for _, line := range result.Explanation {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	if result.RoleAffinity != nil && result.RoleAffinity.Reason != "" {
		fmt.Fprintf(&b, "Role relationship: %s\n", result.RoleAffinity.Reason)
	}
	b.WriteString("Write one friendly sentence advising whether and how to connect. Do not mention the numeric score.")
	return b.String()
}
