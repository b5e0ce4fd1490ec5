package main

import (
	"context"
	"fmt"

	"github.com/terraincognita07/bloom/internal/config"
	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/mail"
	"go.uber.org/zap"
)

func newInsightProvider(ctx context.Context, cfg config.InsightConfig, log *zap.Logger) (insight.Provider, error) {
	switch cfg.Provider {
	case insight.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY is empty, narrative insights will fall back")
		}
		anthropic := insight.DefaultAnthropicConfig(cfg.AnthropicAPIKey)
		if cfg.AnthropicURL != "" {
			anthropic.BaseURL = cfg.AnthropicURL
		}
		if cfg.AnthropicModel != "" {
			anthropic.Model = cfg.AnthropicModel
		}
		if cfg.MaxTokens > 0 {
			anthropic.MaxTokens = cfg.MaxTokens
		}
		anthropic.Timeout = cfg.Timeout
		return insight.NewAnthropicProvider(anthropic, log), nil
	case insight.ProviderGemini:
		provider, err := insight.NewGeminiProvider(ctx, insight.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.GeminiModel,
			MaxTokens: cfg.MaxTokens,
		}, log)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case insight.ProviderStatic:
		return insight.StaticProvider{Text: cfg.StaticText}, nil
	default:
		return nil, fmt.Errorf("unknown insight provider %q", cfg.Provider)
	}
}

func newMailer(cfg config.SMTPConfig, log *zap.Logger) mail.Mailer {
	if !cfg.Enabled() {
		log.Warn("SMTP_HOST is empty, sign-in links will be written to the log")
		return mail.NewLogMailer(log)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
}
