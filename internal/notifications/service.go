// Package notifications stores the per-post notification documents produced
// by the fan-out task. Each notification is shared by its whole recipient
// list; deletion is global, not per recipient.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

// Service provides notification storage backed by the notifications table.
type Service struct {
	db *gorm.DB
}

// NewService creates a notifications service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateForPost writes the single notification for a post. The recipient list
// is frozen here, even when empty. The unique index on post_id makes the call
// idempotent: a re-run for the same post reports created=false and changes
// nothing.
func (s *Service) CreateForPost(ctx context.Context, post *models.Post, recipients []string) (created bool, err error) {
	if recipients == nil {
		recipients = []string{}
	}

	notification := models.Notification{
		NotificationID: uuid.New().String(),
		PostID:         post.ID,
		Title:          post.Title,
		Category:       post.Category,
		Recipients:     datatypes.JSONSlice[string](recipients),
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create notification: %w", err)
	}

	return true, nil
}

// ListForRecipient returns every notification whose recipient list contains
// the given email.
func (s *Service) ListForRecipient(ctx context.Context, email string) ([]models.Notification, error) {
	var all []models.Notification
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	matched := make([]models.Notification, 0, len(all))
	for _, n := range all {
		if slices.Contains(n.Recipients, email) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// DeleteByID removes a notification by its public id. The removal affects
// every recipient at once.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("notification_id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", apperr.ErrNotFound, id)
	}
	return nil
}
