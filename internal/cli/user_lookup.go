package cli

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

func findUserByEmail(repositories *db.Repositories, email string) (models.User, error) {
	normalizedEmail, err := services.NormalizeSignInEmailInput(email)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid email address %q", email)
	}

	user, err := repositories.Users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
