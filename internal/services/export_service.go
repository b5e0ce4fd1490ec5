package services

import (
	"strconv"
	"strings"

	"github.com/terraincognita07/bloom/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Pelvic Pain",
	"Fatigue",
	"Bloating",
	"Mood",
	"Nausea",
	"Bleeding",
	"Triggers",
	"Notes",
}

type ExportEntryReader interface {
	ListByUserRange(userID uint, from string, to string) ([]models.SymptomEntry, error)
}

type ExportService struct {
	entries ExportEntryReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportJSONEntry struct {
	Date          string   `json:"date"`
	PainLevel     int      `json:"pain_level"`
	FatigueLevel  int      `json:"fatigue_level"`
	BloatingLevel int      `json:"bloating_level"`
	MoodLevel     int      `json:"mood_level"`
	NauseaLevel   int      `json:"nausea_level"`
	BleedingLevel string   `json:"bleeding_level"`
	Triggers      []string `json:"triggers"`
	Notes         string   `json:"notes"`
}

type ExportCSVRow struct {
	Date          string
	PainLevel     int
	FatigueLevel  int
	BloatingLevel int
	MoodLevel     int
	NauseaLevel   int
	BleedingLevel string
	Triggers      []string
	Notes         string
}

func NewExportService(entries ExportEntryReader) *ExportService {
	return &ExportService{entries: entries}
}

// LoadEntries returns entries inside the range ordered oldest first.
func (service *ExportService) LoadEntries(userID uint, exportRange ExportRange) ([]models.SymptomEntry, error) {
	return service.entries.ListByUserRange(userID, exportRange.From, exportRange.To)
}

func (service *ExportService) BuildSummary(userID uint, exportRange ExportRange) (ExportSummary, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	first := entries[0].EntryDate
	last := entries[0].EntryDate
	for _, entry := range entries[1:] {
		if entry.EntryDate < first {
			first = entry.EntryDate
		}
		if entry.EntryDate > last {
			last = entry.EntryDate
		}
	}

	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     first,
		DateTo:       last,
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, exportRange ExportRange) ([]ExportJSONEntry, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return nil, err
	}

	result := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		triggers := entry.Triggers
		if triggers == nil {
			triggers = []string{}
		}
		result = append(result, ExportJSONEntry{
			Date:          entry.EntryDate,
			PainLevel:     entry.PainLevel,
			FatigueLevel:  entry.FatigueLevel,
			BloatingLevel: entry.BloatingLevel,
			MoodLevel:     entry.MoodLevel,
			NauseaLevel:   entry.NauseaLevel,
			BleedingLevel: normalizeExportBleeding(entry.BleedingLevel),
			Triggers:      triggers,
			Notes:         entry.Notes,
		})
	}
	return result, nil
}

func (service *ExportService) BuildCSVRows(userID uint, exportRange ExportRange) ([]ExportCSVRow, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ExportCSVRow{
			Date:          entry.EntryDate,
			PainLevel:     entry.PainLevel,
			FatigueLevel:  entry.FatigueLevel,
			BloatingLevel: entry.BloatingLevel,
			MoodLevel:     entry.MoodLevel,
			NauseaLevel:   entry.NauseaLevel,
			BleedingLevel: csvBleedingLabel(entry.BleedingLevel),
			Triggers:      entry.Triggers,
			Notes:         entry.Notes,
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		strconv.Itoa(row.PainLevel),
		strconv.Itoa(row.FatigueLevel),
		strconv.Itoa(row.BloatingLevel),
		strconv.Itoa(row.MoodLevel),
		strconv.Itoa(row.NauseaLevel),
		row.BleedingLevel,
		strings.Join(row.Triggers, "; "),
		row.Notes,
	}
}

func normalizeExportBleeding(level string) string {
	if models.BleedingRank(level) < 0 {
		return models.BleedingNone
	}
	return level
}

func csvBleedingLabel(level string) string {
	switch normalizeExportBleeding(level) {
	case models.BleedingSpotting:
		return "Spotting"
	case models.BleedingLight:
		return "Light"
	case models.BleedingModerate:
		return "Moderate"
	case models.BleedingHeavy:
		return "Heavy"
	default:
		return "None"
	}
}
