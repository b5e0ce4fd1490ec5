package models

import "time"

// SignInLink is a pending passwordless sign-in. Only the bcrypt hash of the
// link secret is stored.
type SignInLink struct {
	ID         string     `gorm:"primaryKey;type:text"`
	Email      string     `gorm:"not null;index"`
	SecretHash string     `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null"`
	UsedAt     *time.Time
	CreatedAt  time.Time
}

func (link SignInLink) Usable(now time.Time) bool {
	return link.UsedAt == nil && now.Before(link.ExpiresAt)
}
