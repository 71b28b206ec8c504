// Package images generates an illustration through the OpenAI Images API and
// downloads the result with validation and bounded retries.
package images

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

// Config selects the image generation model and output size.
type Config struct {
	APIKey string
	Model  string
	Size   string
}

type Client struct {
	api *openai.Client
	cfg Config
	log logging.Logger
}

func NewClient(cfg Config, log logging.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("images: api key is required")
	}
	api := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{api: &api, cfg: cfg, log: log.WithName("images")}, nil
}

// Generate submits the illustration prompt and returns the URL of the
// generated image. The URL is short-lived and should be downloaded promptly.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(c.cfg.Model),
		Size:   openai.ImageGenerateParamsSize(c.cfg.Size),
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("images: generate: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("images: response contains no image URL")
	}
	c.log.Debug("image generated", "model", c.cfg.Model, "size", c.cfg.Size)
	return resp.Data[0].URL, nil
}
