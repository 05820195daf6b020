package watsonxclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultURL     = "https://us-south.ml.cloud.ibm.com"
	DefaultModelID = "meta-llama/llama-3-70b-instruct"

	generationPath = "/ml/v1/text/generation"
	apiVersion     = "2023-05-29"
)

// Config contains the WatsonX project settings
type Config struct {
	URL       string
	ProjectID string
	ModelID   string

	// Timeout bounds a single HTTP call. The caller's context may be shorter.
	Timeout time.Duration
}

// Parameters are the decoding settings sent with every generation request
type Parameters struct {
	DecodingMethod    string  `json:"decoding_method"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	MinNewTokens      int     `json:"min_new_tokens"`
	Temperature       float64 `json:"temperature"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

// DefaultParameters returns greedy decoding tuned for structured JSON output
func DefaultParameters() Parameters {
	return Parameters{
		DecodingMethod:    "greedy",
		MaxNewTokens:      1000,
		MinNewTokens:      1,
		Temperature:       0.3,
		RepetitionPenalty: 1.1,
	}
}

type generationRequest struct {
	ModelID    string     `json:"model_id"`
	Input      string     `json:"input"`
	Parameters Parameters `json:"parameters"`
	ProjectID  string     `json:"project_id"`
}

type generationResult struct {
	GeneratedText  string `json:"generated_text"`
	StopReason     string `json:"stop_reason"`
	InputTokens    int    `json:"input_token_count"`
	GeneratedCount int    `json:"generated_token_count"`
}

type generationResponse struct {
	ModelID string             `json:"model_id"`
	Results []generationResult `json:"results"`
}

type apiError struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	StatusCode int `json:"status_code"`
}

func (e *apiError) message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// Client calls the WatsonX text generation API
type Client struct {
	httpClient *resty.Client
	config     Config
	params     Parameters
	logger     *zap.Logger
}

// NewClient creates a WatsonX client. Requests are authorised with bearer tokens from
// tokenSource, normally an IAM API key exchange.
func NewClient(config Config, tokenSource oauth2.TokenSource, logger *zap.Logger) (*Client, error) {
	if config.ProjectID == "" {
		return nil, fmt.Errorf("watsonx project ID is required")
	}
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.ModelID == "" {
		config.ModelID = DefaultModelID
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(config.URL).
		SetTimeout(config.Timeout).
		SetTransport(&oauth2.Transport{Source: tokenSource, Base: http.DefaultTransport}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		config:     config,
		params:     DefaultParameters(),
		logger:     logger,
	}, nil
}

// Generate sends prompt to the configured model and returns the generated text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := generationRequest{
		ModelID:    c.config.ModelID,
		Input:      prompt,
		Parameters: c.params,
		ProjectID:  c.config.ProjectID,
	}

	c.logger.Debug("Calling WatsonX text generation",
		zap.String("model_id", c.config.ModelID),
		zap.Int("prompt_length", len(prompt)))

	var response generationResponse
	var failure apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("version", apiVersion).
		SetBody(request).
		SetResult(&response).
		SetError(&failure).
		Post(generationPath)
	if err != nil {
		return "", fmt.Errorf("failed to call WatsonX: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("WatsonX returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", failure.message()))
		if msg := failure.message(); msg != "" {
			return "", fmt.Errorf("WatsonX error (status %d): %s", resp.StatusCode(), msg)
		}
		return "", fmt.Errorf("WatsonX error (status %d)", resp.StatusCode())
	}

	if len(response.Results) == 0 {
		return "", fmt.Errorf("WatsonX response contained no results")
	}

	result := response.Results[0]
	c.logger.Debug("WatsonX generation complete",
		zap.String("stop_reason", result.StopReason),
		zap.Int("generated_tokens", result.GeneratedCount))

	return result.GeneratedText, nil
}
