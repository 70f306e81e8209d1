// Package accounts implements account creation and credential checks. It is
// the only package that touches passwords: they are stored as bcrypt hashes
// and compared with bcrypt's constant-time check, never echoed back.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

// Service provides identity operations backed by the users table.
type Service struct {
	db *gorm.DB
}

// NewService creates an accounts service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateAccount registers a new user. All fields are required. The email must
// be unused: a pre-check gives the friendly error in the common case, and the
// unique index on users.email catches concurrent signups that slip past it.
func (s *Service) CreateAccount(ctx context.Context, name, email, password, role string) error {
	if name == "" || email == "" || password == "" || role == "" {
		return fmt.Errorf("%w: all fields are required", apperr.ErrValidation)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: email %s", apperr.ErrConflict, email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email %s", apperr.ErrConflict, email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Authenticate checks credentials and returns the stored name on success.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", apperr.ErrAuth)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrAuth
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.ErrAuth
	}

	return user.Name, nil
}

// LookupByEmail returns the user for the given email.
func (s *Service) LookupByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
