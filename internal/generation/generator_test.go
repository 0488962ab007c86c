package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// The genai SDK's opencensus dependency starts a stats worker at init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

const validResponse = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"title": {"type": "string", "x-wv-type": "Text"}
	}
}`

// invalidResponse parses fine but fails validation: no x-wv-type.
const invalidResponse = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"title": {"type": "string"}
	}
}`

// scriptedClient replays canned responses or errors in call order and
// records the system prompt of every call.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
	systems   []string
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

func (c *scriptedClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	i := c.calls
	c.calls++
	c.systems = append(c.systems, systemPrompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("script exhausted")
}

func quickOptions() Options {
	opts := DefaultOptions()
	opts.ParseRetryDelay = 0
	return opts
}

func TestGenerateFirstAttemptSuccess(t *testing.T) {
	client := &scriptedClient{responses: []string{validResponse}}
	gen := New(client, quickOptions())

	doc, status, err := gen.Generate(context.Background(), "simple app")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, status, "attempt 1")
	assert.Equal(t, 1, client.calls)
}

func TestGenerateSucceedsOnThirdAttemptAfterParseFailures(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"I cannot produce JSON right now",
		"still not { valid",
		validResponse,
	}}
	gen := New(client, quickOptions())

	doc, status, err := gen.Generate(context.Background(), "simple app")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, status, "attempt 3")
	assert.Equal(t, 3, client.calls)
}

func TestGenerateEscalatesWithinAttempt(t *testing.T) {
	client := &scriptedClient{responses: []string{invalidResponse, validResponse}}
	gen := New(client, quickOptions())

	doc, status, err := gen.Generate(context.Background(), "simple app")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, status, "escalated")
	require.Equal(t, 2, client.calls)

	// The second call carries the escalation text, the first does not.
	assert.False(t, strings.Contains(client.systems[0], EscalationSuffix))
	assert.True(t, strings.HasSuffix(client.systems[1], EscalationSuffix))
}

func TestGenerateExhaustsAttemptsOnPersistentViolations(t *testing.T) {
	client := &scriptedClient{responses: []string{
		invalidResponse, invalidResponse, // attempt 1 + escalation
		invalidResponse, invalidResponse, // attempt 2 + escalation
		invalidResponse, // attempt 3, no escalation on the last
	}}
	gen := New(client, quickOptions())

	doc, status, err := gen.Generate(context.Background(), "simple app")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrSchemaViolation)
	assert.Contains(t, status, "after 3 attempts")
	assert.Equal(t, 5, client.calls)
}

func TestGenerateNoEscalationWhenDisabled(t *testing.T) {
	client := &scriptedClient{responses: []string{
		invalidResponse, invalidResponse, invalidResponse,
	}}
	opts := quickOptions()
	opts.EscalateOnInvalid = false
	gen := New(client, opts)

	_, _, err := gen.Generate(context.Background(), "simple app")
	require.Error(t, err)
	assert.Equal(t, 3, client.calls)
}

func TestGenerateServiceErrorSurfaces(t *testing.T) {
	boom := errors.New("upstream 500")
	client := &scriptedClient{errs: []error{boom, boom, boom}}
	gen := New(client, quickOptions())

	doc, status, err := gen.Generate(context.Background(), "simple app")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrService)
	assert.Contains(t, status, "after 3 attempts")
}

func TestGenerateMalformedAfterAllAttempts(t *testing.T) {
	client := &scriptedClient{responses: []string{"nope", "nope", "nope"}}
	gen := New(client, quickOptions())

	_, _, err := gen.Generate(context.Background(), "simple app")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, 3, client.calls)
}

func TestGenerateRecoversFencedResponse(t *testing.T) {
	fenced := "Here is your schema:\n```json\n" + validResponse + "\n```\nLet me know!"
	client := &scriptedClient{responses: []string{fenced}}
	gen := New(client, quickOptions())

	doc, _, err := gen.Generate(context.Background(), "simple app")
	require.NoError(t, err)
	assert.Contains(t, doc.Properties(), "title")
}

func TestNewNormalizesAttemptCount(t *testing.T) {
	gen := New(&scriptedClient{}, Options{MaxAttempts: -1})
	assert.Equal(t, DefaultOptions().MaxAttempts, gen.opts.MaxAttempts)
}

func TestGenerateParseRetryDelayIsBounded(t *testing.T) {
	client := &scriptedClient{responses: []string{"nope", validResponse}}
	opts := quickOptions()
	opts.ParseRetryDelay = 10 * time.Millisecond
	gen := New(client, opts)

	start := time.Now()
	_, _, err := gen.Generate(context.Background(), "simple app")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
