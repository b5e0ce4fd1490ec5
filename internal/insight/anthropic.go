package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	DefaultAnthropicModel   = "claude-sonnet-4-20250514"
	anthropicVersion        = "2023-06-01"
)

type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func DefaultAnthropicConfig(apiKey string) AnthropicConfig {
	return AnthropicConfig{
		APIKey:    apiKey,
		BaseURL:   DefaultAnthropicBaseURL,
		Model:     DefaultAnthropicModel,
		MaxTokens: DefaultMaxTokens,
		Timeout:   30 * time.Second,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AnthropicProvider calls the Messages API once per request. It never retries.
type AnthropicProvider struct {
	config     AnthropicConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewAnthropicProvider(config AnthropicConfig, logger *zap.Logger) *AnthropicProvider {
	if config.BaseURL == "" {
		config.BaseURL = DefaultAnthropicBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultAnthropicModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicProvider{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("anthropic"),
	}
}

func (provider *AnthropicProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	if provider.config.APIKey == "" {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     provider.config.Model,
		MaxTokens: provider.config.MaxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(provider.config.BaseURL, "/")+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create anthropic request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-api-key", provider.config.APIKey)
	request.Header.Set("anthropic-version", anthropicVersion)

	startedAt := time.Now()
	response, err := provider.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read anthropic response: %w", err)
	}
	provider.logger.Debug("anthropic response",
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(startedAt)),
		zap.Int("body_len", len(body)),
	)

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrNoInsight, response.StatusCode)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoInsight, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrNoInsight, decoded.Error.Message)
	}
	if len(decoded.Content) == 0 || decoded.Content[0].Text == "" {
		return "", ErrNoInsight
	}
	return decoded.Content[0].Text, nil
}
