package db

import (
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	return takeUser(repo.database.Where("id = ?", userID))
}

// FindByNormalizedEmail expects email already trimmed and lower-cased.
func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	return takeUser(repo.database.Where("lower(trim(email)) = ?", email))
}

// Create inserts user. When another request registered the same email
// first, user is filled from the stored row instead of failing.
func (repo *UserRepository) Create(user *models.User) error {
	result := repo.database.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(user)
	if result.Error != nil || result.RowsAffected > 0 {
		return result.Error
	}

	existing, err := repo.FindByNormalizedEmail(user.Email)
	if err != nil {
		return err
	}
	*user = existing
	return nil
}

func (repo *UserRepository) TouchLastSignIn(userID uint, at time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("last_sign_in_at", at).Error
}

func takeUser(query *gorm.DB) (models.User, error) {
	var user models.User
	err := query.Take(&user).Error
	return user, err
}
