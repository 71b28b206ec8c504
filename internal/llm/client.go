// Package llm wraps the text-generation service behind a single call shape:
// system instruction + user prompt in, generated text out.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

// Config holds the generation parameters applied to every call.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	CallTimeout time.Duration
}

type Client struct {
	model llms.Model
	cfg   Config
	log   logging.Logger
}

// NewClient builds a Client backed by the OpenAI chat API.
func NewClient(cfg Config, log logging.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm: model name is required")
	}
	model, err := openai.New(openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("llm: create openai client: %w", err)
	}
	return &Client{model: model, cfg: cfg, log: log.WithName("llm")}, nil
}

// NewClientWithModel builds a Client over an existing llms.Model. Used by
// tests to substitute a fake model.
func NewClientWithModel(model llms.Model, cfg Config, log logging.Logger) *Client {
	return &Client{model: model, cfg: cfg, log: log.WithName("llm")}
}

// Generate sends one system + user prompt pair and returns the generated
// text. The configured max token count and sampling temperature apply.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	c.log.Debug("generation call", "model", c.cfg.Model, "prompt_bytes", len(prompt))
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(c.cfg.MaxTokens),
		llms.WithTemperature(c.cfg.Temperature),
	)
	if err != nil {
		return "", c.annotateError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty response")
	}
	return resp.Choices[0].Content, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.CallTimeout)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llm call timed out after %s: %w", c.cfg.CallTimeout, err)
	}
	return fmt.Errorf("llm call failed: %w", err)
}
