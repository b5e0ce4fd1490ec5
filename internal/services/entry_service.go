package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrEntryLoadFailed = errors.New("load entries failed")
	ErrEntrySaveFailed = errors.New("save entry failed")
)

type EntryRepository interface {
	ListByUser(userID uint) ([]models.SymptomEntry, error)
	FindByUserAndDate(userID uint, entryDate string) (models.SymptomEntry, bool, error)
	Upsert(entry models.SymptomEntry) (models.SymptomEntry, error)
}

type EntryService struct {
	entries  EntryRepository
	location *time.Location
	now      func() time.Time
}

func NewEntryService(entries EntryRepository, location *time.Location) *EntryService {
	if location == nil {
		location = time.UTC
	}
	return &EntryService{
		entries:  entries,
		location: location,
		now:      time.Now,
	}
}

func (service *EntryService) Location() *time.Location {
	return service.location
}

func (service *EntryService) Today() string {
	return EntryDateFor(service.now(), service.location)
}

// ListEntries returns the user's entries newest first.
func (service *EntryService) ListEntries(userID uint) ([]models.SymptomEntry, error) {
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, errors.Join(ErrEntryLoadFailed, err)
	}
	return entries, nil
}

// TodayDraft returns today's stored entry when it exists, otherwise a fresh
// draft with default scores. The bool reports whether the entry is stored.
func (service *EntryService) TodayDraft(userID uint) (models.SymptomEntry, bool, error) {
	draft := NewDraft(userID, service.now(), service.location)
	stored, found, err := service.entries.FindByUserAndDate(userID, draft.EntryDate)
	if err != nil {
		return models.SymptomEntry{}, false, errors.Join(ErrEntryLoadFailed, err)
	}
	if !found {
		return draft, false, nil
	}
	if stored.Triggers == nil {
		stored.Triggers = []string{}
	}
	return stored, true, nil
}

// SaveToday upserts today's entry. Saving twice on the same day overwrites
// the earlier values.
func (service *EntryService) SaveToday(userID uint, input EntryInput) (models.SymptomEntry, error) {
	normalized, err := NormalizeEntryInput(input)
	if err != nil {
		return models.SymptomEntry{}, err
	}

	stored, err := service.entries.Upsert(models.SymptomEntry{
		UserID:        userID,
		EntryDate:     service.Today(),
		PainLevel:     normalized.PainLevel,
		FatigueLevel:  normalized.FatigueLevel,
		BloatingLevel: normalized.BloatingLevel,
		MoodLevel:     normalized.MoodLevel,
		NauseaLevel:   normalized.NauseaLevel,
		BleedingLevel: normalized.BleedingLevel,
		Triggers:      normalized.Triggers,
		Notes:         normalized.Notes,
	})
	if err != nil {
		return models.SymptomEntry{}, errors.Join(ErrEntrySaveFailed, err)
	}
	return stored, nil
}
