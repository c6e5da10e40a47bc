// Package gemini provides Google Gemini integration over the
// generateContent REST API
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

// ErrMissingAPIKey is returned when the client is built without a key
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Config configures the client
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements outbound.AIClient using Gemini
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ outbound.AIClient = (*Client)(nil)

// NewClient creates a new Gemini client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger = logger.Named("gemini-client")
	logger.Info("Gemini client initialized", zap.String("model", cfg.Model))

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}, nil
}

// Part is a piece of message content
type Part struct {
	Text string `json:"text"`
}

// Content is a role tagged message
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig controls sampling
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateContentRequest is the body of models/{model}:generateContent
type GenerateContentRequest struct {
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	Contents          []Content        `json:"contents"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// Candidate is one generated answer
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateContentResponse is the generateContent reply
type GenerateContentResponse struct {
	Candidates     []Candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata,omitempty"`
}

// APIError is the error envelope returned by Google APIs
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error %d %s: %s", e.Code, e.Status, e.Message)
}

// Name returns the provider name
func (c *Client) Name() string {
	return "gemini"
}

// Generate returns the text of the first candidate
func (c *Client) Generate(ctx context.Context, prompt ai.Prompt) (string, error) {
	body := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt.User}}}},
		GenerationConfig: GenerationConfig{
			Temperature:     prompt.Temperature,
			MaxOutputTokens: prompt.MaxTokens,
		},
	}
	if prompt.System != "" {
		body.SystemInstruction = &Content{Parts: []Part{{Text: prompt.System}}}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	var result GenerateContentResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	if result.UsageMetadata != nil {
		c.logger.Debug("Gemini completion successful",
			zap.String("finish_reason", result.Candidates[0].FinishReason),
			zap.Int("prompt_tokens", result.UsageMetadata.PromptTokenCount),
			zap.Int("completion_tokens", result.UsageMetadata.CandidatesTokenCount))
	}

	return text.String(), nil
}

// HealthCheck fetches the model description
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/models/%s", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("gemini health check failed: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != nil {
			return envelope.Error
		}
		return &APIError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode), Message: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
