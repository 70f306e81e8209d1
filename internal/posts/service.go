// Package posts implements post authoring and listing. Creating a post owes a
// notification to the category's subscribers; that debt is recorded as an
// outbox event in the same transaction as the post, so the fan-out can fail or
// be retried without the post and the notification drifting apart.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/accounts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

// EnqueueFunc schedules the fan-out task for an outbox event after commit.
type EnqueueFunc func(eventID string) error

// Service provides post storage and the notification outbox.
type Service struct {
	db       *gorm.DB
	accounts *accounts.Service
	enqueue  EnqueueFunc
}

// NewService creates a posts service. enqueue may be nil, in which case the
// outbox sweeper is the only delivery path.
func NewService(db *gorm.DB, accountsSvc *accounts.Service, enqueue EnqueueFunc) *Service {
	return &Service{db: db, accounts: accountsSvc, enqueue: enqueue}
}

// Create persists a post together with its outbox event and schedules the
// notification fan-out. The author's email must resolve to an account. The
// post write wins over the fan-out: an enqueue failure is logged and left for
// the sweeper, never rolled back.
func (s *Service) Create(ctx context.Context, email, title, content, category string) (*models.Post, error) {
	if _, err := s.accounts.LookupByEmail(ctx, email); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrValidation, email)
		}
		return nil, err
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		Category: category,
		Email:    email,
	}
	event := models.OutboxEvent{
		EventID:   uuid.New().String(),
		EventType: models.EventPostCreated,
		Status:    models.OutboxStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		payload, err := json.Marshal(map[string]any{
			"post_id":  post.ID,
			"title":    post.Title,
			"category": post.Category,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal outbox payload: %w", err)
		}

		event.PostID = post.ID
		event.Payload = payload
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.enqueue != nil {
		if err := s.enqueue(event.EventID); err != nil {
			slog.Warn("Failed to enqueue notification fan-out, sweeper will retry",
				"event_id", event.EventID,
				"post_id", post.ID,
				"error", err,
			)
		}
	}

	return &post, nil
}

// ListByCategory returns all posts with an exact category match in store
// order.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	var list []models.Post
	if err := s.db.WithContext(ctx).Where("category = ?", category).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return list, nil
}
