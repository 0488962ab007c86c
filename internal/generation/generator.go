// Package generation drives the generate-validate-retry loop: it prompts
// the completion service for an application schema, cleans and parses the
// returned text, validates it against the WizyVision contract, and retries
// with an escalated prompt until a valid document emerges or attempts run
// out.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wvassist/internal/logging"
	"wvassist/internal/perception"
	"wvassist/internal/wizyvision"
)

// Failure kinds. Each attempt can fail one of three ways; the last failure
// observed is what surfaces to the caller after exhaustion.
var (
	// ErrMalformedResponse means the completion text was not parseable JSON
	// even after fence stripping and object extraction.
	ErrMalformedResponse = errors.New("completion was not parseable JSON")

	// ErrSchemaViolation means the parsed document failed contract validation.
	ErrSchemaViolation = errors.New("generated schema failed validation")

	// ErrService means the completion call itself failed.
	ErrService = errors.New("completion service error")
)

// Options tunes the attempt loop. The counts are configurable on purpose;
// deployments disagree about how hard to push the model.
type Options struct {
	// MaxAttempts bounds the outer loop. Default 3.
	MaxAttempts int

	// EscalateOnInvalid issues one forceful re-prompt within the same
	// attempt after a validation failure, on all but the last attempt.
	EscalateOnInvalid bool

	// ParseRetryDelay is slept after a parse failure before the next
	// attempt. Never applied after a validation failure.
	ParseRetryDelay time.Duration

	// IncludeExamples embeds the worked example in the system prompt.
	IncludeExamples bool
}

// DefaultOptions returns the standard loop configuration.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:       3,
		EscalateOnInvalid: true,
		ParseRetryDelay:   time.Second,
		IncludeExamples:   true,
	}
}

// Generator obtains valid WizyVision schemas from a completion service.
// It holds no mutable state across calls; concurrent use by external
// callers is safe, though the loop itself is strictly sequential.
type Generator struct {
	client perception.LLMClient
	opts   Options
}

// New creates a Generator. Zero or negative MaxAttempts falls back to the
// default.
func New(client perception.LLMClient, opts Options) *Generator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	return &Generator{client: client, opts: opts}
}

// Generate runs the attempt loop for one user request. It always returns a
// human-readable status; doc is nil and err non-nil exactly when every
// attempt failed. The first structurally valid document wins; later
// attempts never compete with earlier ones.
func (g *Generator) Generate(ctx context.Context, userRequest string) (wizyvision.Document, string, error) {
	system := SystemPrompt(g.opts.IncludeExamples)
	user := UserPrompt(userRequest)
	reqID := uuid.NewString()[:8]

	var lastErr error
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		logging.Generation("[%s] attempt %d/%d", reqID, attempt, g.opts.MaxAttempts)

		doc, result, err := g.attemptOnce(ctx, system, user)
		if err == nil && result.Valid {
			status := fmt.Sprintf("schema generated successfully on attempt %d", attempt)
			logging.Generation("[%s] %s", reqID, status)
			return doc, status, nil
		}

		if err == nil && g.opts.EscalateOnInvalid && attempt < g.opts.MaxAttempts {
			logging.GenerationWarn("[%s] validation failed: %s; escalating within attempt %d", reqID, result.Message(), attempt)
			var escResult wizyvision.Result
			doc, escResult, err = g.attemptOnce(ctx, system+EscalationSuffix, user)
			if err == nil && escResult.Valid {
				status := fmt.Sprintf("schema generated successfully on escalated retry of attempt %d", attempt)
				logging.Generation("[%s] %s", reqID, status)
				return doc, status, nil
			}
			if err == nil {
				result = escResult
			}
		}

		switch {
		case err != nil:
			lastErr = err
			logging.GenerationWarn("[%s] attempt %d failed: %v", reqID, attempt, err)
			if errors.Is(err, ErrMalformedResponse) && attempt < g.opts.MaxAttempts && g.opts.ParseRetryDelay > 0 {
				time.Sleep(g.opts.ParseRetryDelay)
			}
		default:
			lastErr = fmt.Errorf("%w: %s", ErrSchemaViolation, result.Message())
			logging.GenerationWarn("[%s] attempt %d invalid: %s", reqID, attempt, result.Message())
		}
	}

	status := fmt.Sprintf("failed to generate a valid schema after %d attempts: %v", g.opts.MaxAttempts, lastErr)
	logging.Generation("[%s] %s", reqID, status)
	return nil, status, lastErr
}

// attemptOnce performs one completion round trip: call, clean, parse,
// validate. The returned Result carries the verdict when err is nil.
func (g *Generator) attemptOnce(ctx context.Context, systemPrompt, userPrompt string) (wizyvision.Document, wizyvision.Result, error) {
	resp, err := g.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, wizyvision.Result{}, fmt.Errorf("%w: %v", ErrService, err)
	}

	cleaned := CleanResponse(resp)

	var value interface{}
	if parseErr := json.Unmarshal([]byte(cleaned), &value); parseErr != nil {
		candidate, found := extractJSONObject(cleaned)
		if !found {
			return nil, wizyvision.Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, parseErr)
		}
		if retryErr := json.Unmarshal([]byte(candidate), &value); retryErr != nil {
			return nil, wizyvision.Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, parseErr)
		}
	}

	result := wizyvision.ValidateValue(value)
	logging.Validation("valid=%t violations=%d", result.Valid, len(result.Violations))

	doc, _ := value.(map[string]interface{})
	return wizyvision.Document(doc), result, nil
}
