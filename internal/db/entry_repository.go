package db

import (
	"errors"

	"github.com/google/uuid"
	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var entryUpsertColumns = []string{
	"pain_level",
	"fatigue_level",
	"bloating_level",
	"mood_level",
	"nausea_level",
	"bleeding_level",
	"triggers",
	"notes",
	"updated_at",
}

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

// ListByUser returns every entry of the user, newest entry_date first.
func (repo *EntryRepository) ListByUser(userID uint) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserRange returns entries within [from, to] (inclusive, YYYY-MM-DD);
// an empty bound is open.
func (repo *EntryRepository) ListByUserRange(userID uint, from string, to string) ([]models.SymptomEntry, error) {
	query := repo.database.Model(&models.SymptomEntry{}).Where("user_id = ?", userID)
	if from != "" {
		query = query.Where("entry_date >= ?", from)
	}
	if to != "" {
		query = query.Where("entry_date <= ?", to)
	}

	entries := make([]models.SymptomEntry, 0)
	if err := query.Order("entry_date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) FindByUserAndDate(userID uint, entryDate string) (models.SymptomEntry, bool, error) {
	entry := models.SymptomEntry{}
	result := repo.database.
		Where("user_id = ? AND entry_date = ?", userID, entryDate).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.SymptomEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomEntry{}, false, nil
	}
	return entry, true, nil
}

// Upsert inserts the entry or overwrites the row already stored for the same
// (user_id, entry_date) and returns the stored row.
func (repo *EntryRepository) Upsert(entry models.SymptomEntry) (models.SymptomEntry, error) {
	if entry.UserID == 0 || entry.EntryDate == "" {
		return models.SymptomEntry{}, errors.New("entry user and date are required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Triggers == nil {
		entry.Triggers = []string{}
	}

	var stored models.SymptomEntry
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns(entryUpsertColumns),
		}).Create(&entry).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND entry_date = ?", entry.UserID, entry.EntryDate).First(&stored).Error
	})
	if err != nil {
		return models.SymptomEntry{}, err
	}
	return stored, nil
}

func (repo *EntryRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.SymptomEntry{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
