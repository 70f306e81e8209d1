package database

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	var existingUser models.User
	result := db.Where("email = ?", "alice@dev.local").First(&existingUser)
	if result.Error == nil {
		slog.Info("Seed data already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Alice", Email: "alice@dev.local", PasswordHash: string(hash), Role: "student"},
		{Name: "Bob", Email: "bob@dev.local", PasswordHash: string(hash), Role: "faculty"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	subscription := models.Subscription{
		Email:      "alice@dev.local",
		Categories: datatypes.JSONSlice[string]{"Sports", "Technology"},
	}
	if err := db.Create(&subscription).Error; err != nil {
		return err
	}

	post := models.Post{
		Title:    "Welcome to the platform",
		Content:  "First post on the dev instance.",
		Category: "Campus",
		Email:    "bob@dev.local",
	}
	if err := db.Create(&post).Error; err != nil {
		return err
	}

	slog.Info("Seed data created", "users", len(users))
	return nil
}
