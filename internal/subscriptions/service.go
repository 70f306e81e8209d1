// Package subscriptions maps a user email to the set of categories they
// follow. One row per email; Set is a full replace, never a merge.
package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

// Service provides subscription storage backed by the subscriptions table.
type Service struct {
	db *gorm.DB
}

// NewService creates a subscriptions service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the stored category set for the given email.
func (s *Service) Get(ctx context.Context, email string) ([]string, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subscriptions for %s", apperr.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	return sub.Categories, nil
}

// Set replaces the category set for the given email, creating the row on the
// first call. Concurrent updates to the same email are last write wins.
func (s *Service) Set(ctx context.Context, email string, categories []string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}
	if categories == nil {
		categories = []string{}
	}

	var sub models.Subscription
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.Subscription{
			Email:      email,
			Categories: datatypes.JSONSlice[string](categories),
		}
		if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to fetch subscription: %w", err)
	default:
		if err := s.db.WithContext(ctx).Model(&sub).
			Update("categories", datatypes.JSONSlice[string](categories)).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
	}

	return nil
}

// RecipientsFor returns the emails of every user whose category set contains
// the given category. The match is a linear in-memory filter over the JSON
// sets, which keeps the query portable across drivers.
func (s *Service) RecipientsFor(ctx context.Context, category string) ([]string, error) {
	var subs []models.Subscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	emails := make([]string, 0, len(subs))
	for _, sub := range subs {
		if slices.Contains(sub.Categories, category) {
			emails = append(emails, sub.Email)
		}
	}
	return emails, nil
}
