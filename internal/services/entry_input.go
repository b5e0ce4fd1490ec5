package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

const (
	MaxEntryTriggers = 20
	MaxTriggerLength = 64
)

var (
	ErrInvalidScore         = errors.New("invalid symptom score")
	ErrInvalidBleedingLevel = errors.New("invalid bleeding level")
	ErrInvalidTriggers      = errors.New("invalid triggers")
)

type EntryInput struct {
	PainLevel     int
	FatigueLevel  int
	BloatingLevel int
	MoodLevel     int
	NauseaLevel   int
	BleedingLevel string
	Triggers      []string
	Notes         string
}

// NewDraft returns the unsaved entry shown before the user touches anything.
func NewDraft(userID uint, now time.Time, location *time.Location) models.SymptomEntry {
	return models.SymptomEntry{
		UserID:        userID,
		EntryDate:     EntryDateFor(now, location),
		PainLevel:     models.DefaultScore,
		FatigueLevel:  models.DefaultScore,
		BloatingLevel: models.DefaultScore,
		MoodLevel:     models.DefaultMoodScore,
		NauseaLevel:   models.DefaultScore,
		BleedingLevel: models.BleedingNone,
		Triggers:      []string{},
		Notes:         "",
	}
}

func InputFromEntry(entry models.SymptomEntry) EntryInput {
	return EntryInput{
		PainLevel:     entry.PainLevel,
		FatigueLevel:  entry.FatigueLevel,
		BloatingLevel: entry.BloatingLevel,
		MoodLevel:     entry.MoodLevel,
		NauseaLevel:   entry.NauseaLevel,
		BleedingLevel: entry.BleedingLevel,
		Triggers:      append([]string(nil), entry.Triggers...),
		Notes:         entry.Notes,
	}
}

func NormalizeEntryInput(input EntryInput) (EntryInput, error) {
	for _, score := range []int{input.PainLevel, input.FatigueLevel, input.BloatingLevel, input.MoodLevel, input.NauseaLevel} {
		if !IsValidScore(score) {
			return input, ErrInvalidScore
		}
	}

	input.BleedingLevel = strings.ToLower(strings.TrimSpace(input.BleedingLevel))
	if input.BleedingLevel == "" {
		input.BleedingLevel = models.BleedingNone
	}
	if models.BleedingRank(input.BleedingLevel) < 0 {
		return input, ErrInvalidBleedingLevel
	}

	triggers, err := NormalizeTriggers(input.Triggers)
	if err != nil {
		return input, err
	}
	input.Triggers = triggers
	return input, nil
}

func IsValidScore(score int) bool {
	return score >= models.MinScore && score <= models.MaxScore
}

// NormalizeTriggers trims tags, drops empty ones and removes duplicates while
// keeping the first occurrence in place.
func NormalizeTriggers(raw []string) ([]string, error) {
	triggers := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, value := range raw {
		trigger := strings.TrimSpace(value)
		if trigger == "" || seen[trigger] {
			continue
		}
		if len(trigger) > MaxTriggerLength {
			return nil, ErrInvalidTriggers
		}
		seen[trigger] = true
		triggers = append(triggers, trigger)
	}
	if len(triggers) > MaxEntryTriggers {
		return nil, ErrInvalidTriggers
	}
	return triggers, nil
}

func EntryDateFor(now time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return now.In(location).Format(models.EntryDateLayout)
}
