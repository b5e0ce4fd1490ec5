package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

const (
	NarrativeSummaryMaxEntries = 7

	NarrativeSystemPrompt = "You are a compassionate endometriosis health assistant. " +
		"Analyze symptom patterns and provide warm, clear, actionable insights. " +
		"Keep response to 3-4 sentences. Never diagnose. " +
		"Always suggest consulting their doctor for significant changes."

	narrativeRequestPrefix = "Analyze these recent symptom logs and share pattern insights:\n"
	summaryDateLayout      = "1/2/2006"
)

// BuildNarrativeSummary renders up to NarrativeSummaryMaxEntries of the newest
// entries, one line each, in the order given.
func BuildNarrativeSummary(entries []models.SymptomEntry) string {
	size := min(len(entries), NarrativeSummaryMaxEntries)
	lines := make([]string, 0, size)
	for _, entry := range entries[:size] {
		triggers := "none"
		if len(entry.Triggers) > 0 {
			triggers = strings.Join(entry.Triggers, ", ")
		}
		lines = append(lines, fmt.Sprintf(
			"Date: %s, Pain: %d/10, Fatigue: %d/10, Triggers: %s",
			summaryDate(entry.EntryDate),
			entry.PainLevel,
			entry.FatigueLevel,
			triggers,
		))
	}
	return strings.Join(lines, "\n")
}

// BuildNarrativeRequest returns the user message sent to the insight provider.
func BuildNarrativeRequest(entries []models.SymptomEntry) string {
	return narrativeRequestPrefix + BuildNarrativeSummary(entries)
}

func summaryDate(entryDate string) string {
	parsed, err := time.Parse(models.EntryDateLayout, entryDate)
	if err != nil {
		return entryDate
	}
	return parsed.Format(summaryDateLayout)
}
