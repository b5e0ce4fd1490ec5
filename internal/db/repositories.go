package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Entries     *EntryRepository
	SignInLinks *SignInLinkRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Entries:     NewEntryRepository(database),
		SignInLinks: NewSignInLinkRepository(database),
	}
}
