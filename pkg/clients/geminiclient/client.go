package geminiclient

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

// Client wraps the Google Generative Language API for text generation
type Client struct {
	service *generativelanguage.Service
	model   string
	logger  *zap.Logger
}

// NewClient creates a Gemini client authenticated with an API key. Extra options (endpoint,
// HTTP client) are passed through to the underlying service.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}

	return &Client{
		service: service,
		model:   model,
		logger:  logger,
	}, nil
}

// Generate sends prompt to the model, asking for a JSON reply, and returns the text of the
// first candidate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			ResponseMimeType: "application/json",
			MaxOutputTokens:  2048,
		},
	}

	c.logger.Debug("Calling Gemini generateContent",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(prompt)))

	response, err := c.service.Models.GenerateContent(c.modelName(), request).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini response contained no candidates")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	c.logger.Debug("Gemini generation complete",
		zap.String("finish_reason", response.Candidates[0].FinishReason))

	return text.String(), nil
}

func (c *Client) modelName() string {
	if strings.HasPrefix(c.model, "models/") {
		return c.model
	}
	return "models/" + c.model
}
