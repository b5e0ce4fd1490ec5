package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/models"
)

var servicesTestToday = time.Date(2026, time.February, 17, 9, 30, 0, 0, time.UTC)

func mustEntryDateOffset(days int) string {
	return servicesTestToday.AddDate(0, 0, days).Format(models.EntryDateLayout)
}

func mustTestTranslator(t *testing.T) *i18n.Manager {
	t.Helper()
	manager, err := i18n.NewManager(i18n.LangEN, i18n.Locales())
	if err != nil {
		t.Fatalf("init translator: %v", err)
	}
	return manager
}
