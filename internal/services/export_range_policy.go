package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export by entry date. Empty bounds are open.
type ExportRange struct {
	From string
	To   string
}

func ParseExportRange(rawFrom string, rawTo string) (ExportRange, error) {
	from, err := parseExportBound(rawFrom)
	if err != nil {
		return ExportRange{}, ErrExportFromDateInvalid
	}
	to, err := parseExportBound(rawTo)
	if err != nil {
		return ExportRange{}, ErrExportToDateInvalid
	}

	// Entry dates share one fixed layout, so string order is date order.
	if from != "" && to != "" && to < from {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return ExportRange{From: from, To: to}, nil
}

func parseExportBound(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	parsed, err := time.Parse(models.EntryDateLayout, value)
	if err != nil {
		return "", err
	}
	return parsed.Format(models.EntryDateLayout), nil
}
