// Package worker runs the asynq server that delivers notifications owed by
// the transactional outbox, plus the periodic sweep that rescues events whose
// fan-out task was lost.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/mohanreddy3010/Blogging-Platform/internal/config"
	"github.com/mohanreddy3010/Blogging-Platform/internal/events"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
	"github.com/mohanreddy3010/Blogging-Platform/internal/notifications"
	"github.com/mohanreddy3010/Blogging-Platform/internal/subscriptions"
)

// Events older than this with a still-pending outbox row are considered lost
// and re-enqueued by the sweeper.
const sweepAge = 2 * time.Minute

// asynqLoggerAdapter wraps slog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger *slog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Start starts the Asynq worker in non-blocking mode and returns a stop
// function so the caller can coordinate shutdown. publisher may be nil; the
// fan-out then skips event publication.
func Start(cfg *config.Config, db *gorm.DB, publisher *events.Publisher) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     5,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler:    asynq.ErrorHandlerFunc(makeErrorHandler(logger)),
			Logger:          &asynqLoggerAdapter{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskNotificationFanout, handleNotificationFanout(logger, db, publisher))
	mux.HandleFunc(TaskOutboxSweep, handleOutboxSweep(logger, db))

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}

	logger.Info("Worker started", "concurrency", 5, "redis", cfg.RedisURL)
	return func() { srv.Shutdown() }, nil
}

// handleNotificationFanout unwraps the task payload and delivers the event.
// A missing event or post is not retryable.
func handleNotificationFanout(logger *slog.Logger, db *gorm.DB, publisher *events.Publisher) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload struct {
			EventID string `json:"event_id"`
		}
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}

		err := ProcessOutboxEvent(ctx, logger, db, publisher, payload.EventID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Outbox event or post missing", "event_id", payload.EventID, "error", err.Error())
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
}

// ProcessOutboxEvent delivers the notification owed by one outbox event: it
// recomputes the recipient set from current subscriptions, writes the
// notification, publishes the event, and marks the outbox row delivered.
// Every step tolerates re-runs; a delivered event is a no-op.
func ProcessOutboxEvent(ctx context.Context, logger *slog.Logger, db *gorm.DB, publisher *events.Publisher, eventID string) error {
	subsSvc := subscriptions.NewService(db)
	notifSvc := notifications.NewService(db)

	var event models.OutboxEvent
	if err := db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("outbox event %s: %w", eventID, gorm.ErrRecordNotFound)
		}
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}

	if event.Status == models.OutboxStatusDelivered {
		return nil
	}

	var post models.Post
	if err := db.WithContext(ctx).First(&post, event.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d for event %s: %w", event.PostID, eventID, gorm.ErrRecordNotFound)
		}
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	recipients, err := subsSvc.RecipientsFor(ctx, post.Category)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}

	created, err := notifSvc.CreateForPost(ctx, &post, recipients)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if created && publisher != nil {
		var notification models.Notification
		if err := db.WithContext(ctx).Where("post_id = ?", post.ID).First(&notification).Error; err == nil {
			msgID, err := publisher.PublishNotificationCreated(ctx, events.NotificationCreated{
				NotificationID: notification.NotificationID,
				PostID:         post.ID,
				Title:          post.Title,
				Category:       post.Category,
				Recipients:     recipients,
			})
			if err != nil {
				// Best effort: the notification row is the source of truth.
				logger.Warn("Failed to publish notification event", "event_id", event.EventID, "error", err.Error())
			} else {
				logger.Info("Notification event published", "event_id", event.EventID, "stream_msg_id", msgID)
			}
		}
	}

	now := time.Now()
	if err := db.WithContext(ctx).Model(&event).Updates(map[string]interface{}{
		"status":       models.OutboxStatusDelivered,
		"delivered_at": now,
	}).Error; err != nil {
		return fmt.Errorf("failed to mark outbox event delivered: %w", err)
	}

	logger.Info(
		"Notification fan-out completed",
		"event_id", event.EventID,
		"post_id", post.ID,
		"category", post.Category,
		"recipients", len(recipients),
		"created", created,
	)

	return nil
}

// handleOutboxSweep re-enqueues fan-out tasks for pending outbox events old
// enough that their original task is presumed lost.
func handleOutboxSweep(logger *slog.Logger, db *gorm.DB) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().Add(-sweepAge)

		var stale []models.OutboxEvent
		if err := db.WithContext(ctx).
			Where("status = ? AND created_at < ?", models.OutboxStatusPending, cutoff).
			Find(&stale).Error; err != nil {
			return fmt.Errorf("failed to list pending outbox events: %w", err)
		}

		if len(stale) == 0 {
			return nil
		}

		requeued := 0
		for _, event := range stale {
			if err := EnqueueNotificationFanout(event.EventID); err != nil {
				logger.Warn("Failed to re-enqueue outbox event", "event_id", event.EventID, "error", err.Error())
				continue
			}
			requeued++
		}

		logger.Info("Outbox sweep completed", "stale", len(stale), "requeued", requeued)
		return nil
	}
}

// makeErrorHandler creates an error handler function with logger closure.
func makeErrorHandler(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		logger.Error(
			"Task execution failed",
			"task_type", task.Type(),
			"error", err.Error(),
			"retry_count", retried,
			"max_retry", maxRetry,
		)

		if retried >= maxRetry {
			logger.Error(
				"Task moved to dead letter queue (all retries exhausted)",
				"task_type", task.Type(),
				"payload", string(task.Payload()),
			)
		}
	}
}
