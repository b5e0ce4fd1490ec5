package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

// RunStatsCommand prints the insight engine output for one user.
func RunStatsCommand(out io.Writer, database *gorm.DB, email string, policy services.RiskPolicy) error {
	repositories := db.NewRepositories(database)
	user, err := findUserByEmail(repositories, email)
	if err != nil {
		return err
	}

	entries, err := repositories.Entries.ListByUser(user.ID)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	stats, err := services.ComputeInsights(entries, policy)
	if errors.Is(err, services.ErrInsufficientData) {
		fmt.Fprintf(out, "Not enough data: %d of %d entries logged.\n", len(entries), policy.MinEntries)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Entries:        %d\n", stats.EntryCount)
	fmt.Fprintf(out, "Avg pain:       %.1f\n", stats.AvgPain)
	fmt.Fprintf(out, "Avg fatigue:    %.1f\n", stats.AvgFatigue)
	fmt.Fprintf(out, "Recent pain:    %.1f\n", stats.RecentAvgPain)
	fmt.Fprintf(out, "Recent fatigue: %.1f\n", stats.RecentAvgFatigue)
	fmt.Fprintf(out, "Top trigger:    %s\n", stats.TopTrigger)
	fmt.Fprintf(out, "Risk:           %s\n", stats.RiskLevel)

	bars := make([]string, 0, len(stats.Trend))
	for _, point := range stats.Trend {
		bars = append(bars, fmt.Sprintf("%s:%d", point.Weekday, point.PainLevel))
	}
	fmt.Fprintf(out, "Trend:          %s\n", strings.Join(bars, " "))
	return nil
}
