package models

import (
	"gorm.io/gorm"
)

// User represents a registered account. The email is the identity key used by
// every other record; there are no id-based relations between collections.
type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex:idx_users_email_not_deleted,where:deleted_at IS NULL;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         string `gorm:"not null;default:'student'" json:"role"`
}
