package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"sportiq/internal/llm"
)

// Config bounds the generation pipeline.
type Config struct {
	// Attempts is the number of full pipeline attempts before giving up.
	Attempts int

	// AttemptTimeout caps each attempt's completion call.
	AttemptTimeout time.Duration
}

// DefaultConfig returns the bounds used in production.
func DefaultConfig() Config {
	return Config{
		Attempts:       3,
		AttemptTimeout: 30 * time.Second,
	}
}

// Generator produces validated learning content through the text-generation
// collaborator. It holds no per-request state; one instance serves all
// requests.
type Generator struct {
	client llm.Client
	config Config
}

// New creates a Generator. Zero config fields fall back to defaults.
func New(client llm.Client, cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Attempts <= 0 {
		cfg.Attempts = def.Attempts
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = def.AttemptTimeout
	}
	return &Generator{client: client, config: cfg}
}

// Generate runs the full pipeline: render prompt, call the collaborator,
// parse and validate, shuffle options. Every failure mode is retried up to
// the attempt bound; each retry is a fully independent attempt with a fresh
// prompt render and network call. After the bound, the last cause is
// surfaced wrapped in an ExhaustedError.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < g.config.Attempts; attempt++ {
		result, err := g.attempt(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// A dead parent context makes further attempts pointless.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &ExhaustedError{Attempts: g.config.Attempts, Err: lastErr}
}

// attempt runs one pass of the pipeline.
func (g *Generator) attempt(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.AttemptTimeout)
	defer cancel()

	raw, err := g.client.Complete(ctx, buildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	result, err := parseResponse(raw, req.Count)
	if err != nil {
		return nil, err
	}

	shuffleOptions(result)
	return result, nil
}

// shuffleOptions re-randomizes each question's option order server-side so
// correctness does not depend on the model honoring the randomize-position
// instruction. The correct index follows the flagged answer.
func shuffleOptions(result *Result) {
	for qi := range result.Questions {
		q := &result.Questions[qi]
		rand.Shuffle(len(q.Options), func(i, j int) {
			q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
			switch q.CorrectOptionIndex {
			case i:
				q.CorrectOptionIndex = j
			case j:
				q.CorrectOptionIndex = i
			}
		})
	}
}
