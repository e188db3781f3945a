// Package ai turns a goal into a generated subtask list using a chat model.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pablasso/agentsim/internal/plan"
)

// Groq exposes an OpenAI-compatible API.
const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTemperature = 0.3
)

// ErrNoAPIKey is returned when a remote model is requested without credentials.
var ErrNoAPIKey = errors.New("no API key configured")

// Options describes a remote model endpoint.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// Client asks a chat model for a plan.
type Client struct {
	model       llms.Model
	temperature float64
}

// NewClient wraps an existing model.
func NewClient(model llms.Model) *Client {
	return &Client{model: model, temperature: DefaultTemperature}
}

// WithTemperature sets the sampling temperature.
func (c *Client) WithTemperature(t float64) *Client {
	c.temperature = t
	return c
}

// NewOpenAICompatible connects to an OpenAI-compatible endpoint, Groq by default.
func NewOpenAICompatible(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	llm, err := openai.New(
		openai.WithToken(opts.APIKey),
		openai.WithModel(opts.Model),
		openai.WithBaseURL(opts.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	c := NewClient(llm)
	if opts.Temperature > 0 {
		c.temperature = opts.Temperature
	}
	return c, nil
}

// Generate requests a subtask list for goal. The result is parsed but not
// validated; callers decide what to accept and bound ctx.
func (c *Client) Generate(ctx context.Context, goal string) (*plan.GeneratedPlan, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, buildUserPrompt(goal)),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("plan generation timed out: %w", ctx.Err())
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("plan generation was cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, errors.New("model returned no choices")
	}

	return parseGeneratedPlan([]byte(resp.Choices[0].Content))
}

func parseGeneratedPlan(data []byte) (*plan.GeneratedPlan, error) {
	jsonData, err := extractJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract JSON from model response: %w", err)
	}

	var result plan.GeneratedPlan
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return &result, nil
}

const systemPrompt = `You are an expert planner. Given a user's goal, break it into clear, minimal,
non-overlapping subtasks with realistic owners (e.g., Venue Agent, Outreach Agent, Design Agent,
Finance Agent, Logistics Agent, Marketing Agent). Return STRICT JSON only.

Schema:
{
  "subtasks": [
    { "title": "...", "owner": "..." }
  ]
}

Rules:
- 4 to 8 subtasks, concise and actionable.
- Keep titles imperative (e.g., "Book the venue").
- Choose meaningful owners, not a generic "Agent" unless necessary.
- Do NOT include commentary outside the JSON.`

func buildUserPrompt(goal string) string {
	return fmt.Sprintf(`Goal: %q

Constraints:
- assume internet access but the work is only simulated.
- do not add costs unless essential.

Return JSON only as per schema.`, goal)
}

// extractJSON defensively extracts a JSON object from potentially noisy output.
func extractJSON(data []byte) ([]byte, error) {
	str := stripMarkdownCodeBlocks(string(data))

	if json.Valid([]byte(str)) {
		return []byte(str), nil
	}

	start := strings.Index(str, "{")
	end := strings.LastIndex(str, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, errors.New("no JSON object found in response")
	}

	extracted := str[start : end+1]
	if !json.Valid([]byte(extracted)) {
		return nil, errors.New("extracted content is not valid JSON")
	}
	return []byte(extracted), nil
}

// stripMarkdownCodeBlocks removes markdown code block markers from a string.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(s, "```json"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
