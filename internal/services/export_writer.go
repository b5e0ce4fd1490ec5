package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type ExportDocument struct {
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportJSONEntry `json:"entries"`
}

// WriteCSV streams the header row followed by one row per entry in range.
func (service *ExportService) WriteCSV(w io.Writer, userID uint, exportRange ExportRange) error {
	rows, err := service.BuildCSVRows(userID, exportRange)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	writer := csv.NewWriter(w)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, append([]string(nil), ExportCSVHeaders...))
	for _, row := range rows {
		records = append(records, row.Columns())
	}
	// WriteAll flushes and reports the writer error.
	return writer.WriteAll(records)
}

// WriteJSON writes an indented ExportDocument stamped with exportedAt.
func (service *ExportService) WriteJSON(w io.Writer, userID uint, exportRange ExportRange, exportedAt time.Time) error {
	entries, err := service.BuildJSONEntries(userID, exportRange)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportDocument{
		ExportedAt: exportedAt.Format(time.RFC3339),
		Entries:    entries,
	})
}
