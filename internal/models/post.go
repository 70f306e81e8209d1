package models

import (
	"gorm.io/gorm"
)

// Post is a single blog entry. The author is tracked by email only.
type Post struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Category string `gorm:"not null;index" json:"category"`
	Email    string `gorm:"not null;index" json:"email"`
}
