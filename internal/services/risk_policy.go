package services

import (
	"errors"
	"fmt"
)

var ErrInvalidRiskPolicy = errors.New("invalid risk policy")

// RiskPolicy holds the heuristic thresholds used by ComputeInsights and the
// pain tier shared by the trend and history views.
type RiskPolicy struct {
	HighPain        float64 `yaml:"high_pain" json:"high_pain"`
	ElevatedPain    float64 `yaml:"elevated_pain" json:"elevated_pain"`
	ElevatedFatigue float64 `yaml:"elevated_fatigue" json:"elevated_fatigue"`
	MediumPain      float64 `yaml:"medium_pain" json:"medium_pain"`
	MediumFatigue   float64 `yaml:"medium_fatigue" json:"medium_fatigue"`
	TierRed         int     `yaml:"tier_red" json:"tier_red"`
	TierAmber       int     `yaml:"tier_amber" json:"tier_amber"`
	MinEntries      int     `yaml:"min_entries" json:"min_entries"`
	RecentWindow    int     `yaml:"recent_window" json:"recent_window"`
	TrendWindow     int     `yaml:"trend_window" json:"trend_window"`
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		HighPain:        7,
		ElevatedPain:    5,
		ElevatedFatigue: 6,
		MediumPain:      4,
		MediumFatigue:   5,
		TierRed:         7,
		TierAmber:       4,
		MinEntries:      3,
		RecentWindow:    3,
		TrendWindow:     7,
	}
}

func (policy RiskPolicy) Validate() error {
	switch {
	case policy.RecentWindow < 1:
		return fmt.Errorf("%w: recent_window must be at least 1", ErrInvalidRiskPolicy)
	case policy.MinEntries < policy.RecentWindow:
		return fmt.Errorf("%w: min_entries must cover recent_window", ErrInvalidRiskPolicy)
	case policy.TrendWindow < 1:
		return fmt.Errorf("%w: trend_window must be at least 1", ErrInvalidRiskPolicy)
	case policy.TierAmber > policy.TierRed:
		return fmt.Errorf("%w: tier_amber must not exceed tier_red", ErrInvalidRiskPolicy)
	case policy.MediumPain > policy.HighPain:
		return fmt.Errorf("%w: medium_pain must not exceed high_pain", ErrInvalidRiskPolicy)
	}
	for _, threshold := range []float64{policy.HighPain, policy.ElevatedPain, policy.ElevatedFatigue, policy.MediumPain, policy.MediumFatigue} {
		if threshold < 1 || threshold > 10 {
			return fmt.Errorf("%w: thresholds must be within 1..10", ErrInvalidRiskPolicy)
		}
	}
	return nil
}
