package db

import (
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
)

type SignInLinkRepository struct {
	database *gorm.DB
}

func NewSignInLinkRepository(database *gorm.DB) *SignInLinkRepository {
	return &SignInLinkRepository{database: database}
}

func (repo *SignInLinkRepository) Create(link *models.SignInLink) error {
	return repo.database.Create(link).Error
}

func (repo *SignInLinkRepository) FindByID(linkID string) (models.SignInLink, error) {
	var link models.SignInLink
	if err := repo.database.Where("id = ?", linkID).First(&link).Error; err != nil {
		return models.SignInLink{}, err
	}
	return link, nil
}

// MarkUsed consumes the link. It reports false when another request consumed
// it first.
func (repo *SignInLinkRepository) MarkUsed(linkID string, at time.Time) (bool, error) {
	result := repo.database.Model(&models.SignInLink{}).
		Where("id = ? AND used_at IS NULL", linkID).
		Update("used_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (repo *SignInLinkRepository) DeleteExpired(before time.Time) (int64, error) {
	result := repo.database.Where("expires_at < ?", before).Delete(&models.SignInLink{})
	return result.RowsAffected, result.Error
}
