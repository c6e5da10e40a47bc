// Package ollama provides Ollama integration for local AI inference
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2:3b"
)

// Config configures the client
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements outbound.AIClient using the Ollama chat API
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

var _ outbound.AIClient = (*Client)(nil)

// NewClient creates a new Ollama client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger = logger.Named("ollama-client")
	logger.Info("Ollama client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout))

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ChatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

// ChatResponse is a non-streaming /api/chat reply
type ChatResponse struct {
	Model        string      `json:"model"`
	Message      ChatMessage `json:"message"`
	Done         bool        `json:"done"`
	EvalCount    int         `json:"eval_count,omitempty"`
	EvalDuration int64       `json:"eval_duration,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// Name returns the provider name
func (c *Client) Name() string {
	return "ollama"
}

// Generate sends the prompt as a system and a user message
func (c *Client) Generate(ctx context.Context, prompt ai.Prompt) (string, error) {
	messages := make([]ChatMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: prompt.User})

	options := map[string]interface{}{
		"temperature": prompt.Temperature,
	}
	if prompt.MaxTokens > 0 {
		options["num_predict"] = prompt.MaxTokens
	}

	jsonBody, err := json.Marshal(ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  options,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, chatResp.Error)
	}
	if !chatResp.Done {
		return "", fmt.Errorf("incomplete response from Ollama")
	}

	c.logger.Debug("Ollama chat completion successful",
		zap.String("model", chatResp.Model),
		zap.Int64("eval_duration", chatResp.EvalDuration),
		zap.Int("eval_count", chatResp.EvalCount))

	return chatResp.Message.Content, nil
}

// HealthCheck lists local models and fails when the server is unreachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}
	return nil
}
