package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}
