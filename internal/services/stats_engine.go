package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

// NoTriggerIdentified is reported as the top trigger when no entry carries
// any trigger tag.
const NoTriggerIdentified = "None identified"

var ErrInsufficientData = errors.New("insufficient data")

type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

type PainTier string

const (
	PainTierRed   PainTier = "red"
	PainTierAmber PainTier = "amber"
	PainTierGreen PainTier = "green"
)

type TrendPoint struct {
	EntryDate string   `json:"entry_date"`
	Weekday   string   `json:"weekday"`
	PainLevel int      `json:"pain_level"`
	Height    float64  `json:"height"`
	Tier      PainTier `json:"tier"`
}

type Insights struct {
	EntryCount       int          `json:"entry_count"`
	AvgPain          float64      `json:"avg_pain"`
	AvgFatigue       float64      `json:"avg_fatigue"`
	TopTrigger       string       `json:"top_trigger"`
	RecentAvgPain    float64      `json:"recent_avg_pain"`
	RecentAvgFatigue float64      `json:"recent_avg_fatigue"`
	RiskLevel        RiskLevel    `json:"risk_level"`
	Trend            []TrendPoint `json:"trend"`
}

// ComputeInsights derives averages, the most frequent trigger, the flare risk
// and the pain trend from entries ordered newest first. It returns
// ErrInsufficientData when fewer than policy.MinEntries entries are given.
// The input slice is only read.
func ComputeInsights(entries []models.SymptomEntry, policy RiskPolicy) (Insights, error) {
	if len(entries) < policy.MinEntries || len(entries) < policy.RecentWindow {
		return Insights{}, ErrInsufficientData
	}

	recent := entries[:policy.RecentWindow]
	recentPain := meanScore(recent, painScore)
	recentFatigue := meanScore(recent, fatigueScore)

	return Insights{
		EntryCount:       len(entries),
		AvgPain:          meanToTenth(entries, painScore),
		AvgFatigue:       meanToTenth(entries, fatigueScore),
		TopTrigger:       TopTrigger(entries),
		RecentAvgPain:    meanToTenth(recent, painScore),
		RecentAvgFatigue: meanToTenth(recent, fatigueScore),
		RiskLevel:        ClassifyRisk(recentPain, recentFatigue, policy),
		Trend:            BuildPainTrend(entries, policy),
	}, nil
}

// ClassifyRisk applies the flare-risk thresholds to the recent means.
func ClassifyRisk(recentPain float64, recentFatigue float64, policy RiskPolicy) RiskLevel {
	if recentPain >= policy.HighPain || (recentPain >= policy.ElevatedPain && recentFatigue >= policy.ElevatedFatigue) {
		return RiskHigh
	}
	if recentPain >= policy.MediumPain || recentFatigue >= policy.MediumFatigue {
		return RiskMedium
	}
	return RiskLow
}

// TopTrigger returns the most frequent trigger. Ties go to the trigger that
// was seen first while walking entries in the given order.
func TopTrigger(entries []models.SymptomEntry) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, entry := range entries {
		for _, trigger := range entry.Triggers {
			if _, seen := counts[trigger]; !seen {
				order = append(order, trigger)
			}
			counts[trigger]++
		}
	}

	top := NoTriggerIdentified
	best := 0
	for _, trigger := range order {
		if counts[trigger] > best {
			top = trigger
			best = counts[trigger]
		}
	}
	return top
}

// BuildPainTrend takes the newest policy.TrendWindow entries and returns them
// oldest first.
func BuildPainTrend(entries []models.SymptomEntry, policy RiskPolicy) []TrendPoint {
	size := min(len(entries), policy.TrendWindow)
	points := make([]TrendPoint, size)
	for index := 0; index < size; index++ {
		entry := entries[size-1-index]
		points[index] = TrendPoint{
			EntryDate: entry.EntryDate,
			Weekday:   weekdayInitial(entry.EntryDate),
			PainLevel: entry.PainLevel,
			Height:    float64(entry.PainLevel) / models.MaxScore,
			Tier:      PainTierFor(entry.PainLevel, policy),
		}
	}
	return points
}

// PainTierFor is the single pain colour rule used by both the trend bars and
// the history accent.
func PainTierFor(painLevel int, policy RiskPolicy) PainTier {
	switch {
	case painLevel >= policy.TierRed:
		return PainTierRed
	case painLevel >= policy.TierAmber:
		return PainTierAmber
	default:
		return PainTierGreen
	}
}

func painScore(entry models.SymptomEntry) int    { return entry.PainLevel }
func fatigueScore(entry models.SymptomEntry) int { return entry.FatigueLevel }

func meanScore(entries []models.SymptomEntry, score func(models.SymptomEntry) int) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, entry := range entries {
		total += score(entry)
	}
	return float64(total) / float64(len(entries))
}

// meanToTenth rounds the exact mean half away from zero to one decimal.
// Working on the integer sum keeps ties like 23/20 = 1.15 from being
// decided by their binary approximation.
func meanToTenth(entries []models.SymptomEntry, score func(models.SymptomEntry) int) float64 {
	count := len(entries)
	if count == 0 {
		return 0
	}
	total := 0
	for _, entry := range entries {
		total += score(entry)
	}
	tenths := (20*total + count) / (2 * count)
	return float64(tenths) / 10
}

func weekdayInitial(entryDate string) string {
	parsed, err := time.Parse(models.EntryDateLayout, entryDate)
	if err != nil {
		return ""
	}
	return parsed.Weekday().String()[:1]
}
