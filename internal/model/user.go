package model

import (
	"github.com/google/uuid"
)

// User is an authenticated account. Hash holds the bcrypt digest of the
// password, never the password itself.
type User struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"size:32;not null;uniqueIndex" json:"name"`
	Hash    string    `gorm:"not null" json:"-"`
	IsAdmin bool      `gorm:"not null" json:"isAdmin"`
}

func (User) TableName() string {
	return "user"
}
