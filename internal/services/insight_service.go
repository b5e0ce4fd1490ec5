package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/models"
)

const (
	narrativeUnableToGenerateKey = "narrative.unable_to_generate"
	narrativeUnableToConnectKey  = "narrative.unable_to_connect"
)

type InsightEntryReader interface {
	ListByUser(userID uint) ([]models.SymptomEntry, error)
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
	Plural(language string, key string, count int) string
}

type Narrative struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type InsightService struct {
	entries    InsightEntryReader
	provider   insight.Provider
	translator Translator
	policy     RiskPolicy
	timeout    time.Duration
}

func NewInsightService(entries InsightEntryReader, provider insight.Provider, translator Translator, policy RiskPolicy, timeout time.Duration) *InsightService {
	return &InsightService{
		entries:    entries,
		provider:   provider,
		translator: translator,
		policy:     policy,
		timeout:    timeout,
	}
}

func (service *InsightService) Policy() RiskPolicy {
	return service.policy
}

func (service *InsightService) Stats(userID uint) (Insights, error) {
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return Insights{}, errors.Join(ErrEntryLoadFailed, err)
	}
	return ComputeInsights(entries, service.policy)
}

// Narrative asks the provider for a short pattern summary of the newest
// entries. Provider failures never surface as errors; they turn into a
// localized fallback text instead.
func (service *InsightService) Narrative(ctx context.Context, userID uint, language string) (Narrative, error) {
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return Narrative{}, errors.Join(ErrEntryLoadFailed, err)
	}
	if len(entries) < service.policy.MinEntries {
		return Narrative{}, ErrInsufficientData
	}

	if service.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, service.timeout)
		defer cancel()
	}

	text, err := service.provider.Complete(ctx, NarrativeSystemPrompt, BuildNarrativeRequest(entries))
	switch {
	case errors.Is(err, insight.ErrNoInsight):
		return service.fallback(language, narrativeUnableToGenerateKey), nil
	case err != nil:
		return service.fallback(language, narrativeUnableToConnectKey), nil
	case text == "":
		return service.fallback(language, narrativeUnableToGenerateKey), nil
	}
	return Narrative{Text: text}, nil
}

func (service *InsightService) fallback(language string, key string) Narrative {
	return Narrative{Text: service.translator.Translate(language, key), Fallback: true}
}
