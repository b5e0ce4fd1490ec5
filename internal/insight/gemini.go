package insight

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string
}

type GeminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int32
	logger    *zap.Logger
}

func NewGeminiProvider(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     config.Model,
		maxTokens: int32(config.MaxTokens),
		logger:    logger.Named("gemini"),
	}, nil
}

func (provider *GeminiProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	generateConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: provider.maxTokens,
	}
	if strings.TrimSpace(system) != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := provider.client.Models.GenerateContent(ctx, provider.model, genai.Text(user), generateConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	provider.logger.Debug("gemini response", zap.String("model", provider.model), zap.Int("text_len", len(text)))
	if text == "" {
		return "", ErrNoInsight
	}
	return text, nil
}
