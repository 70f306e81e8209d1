package worker

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TaskNotificationFanout = "notification:fanout"
	TaskOutboxSweep        = "outbox:sweep"
)

// Package-level Asynq client (singleton)
var client *asynq.Client

// InitClient initializes the global Asynq client for task enqueueing.
// Must be called before any EnqueueX functions.
func InitClient(redisURL string) error {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return err
	}

	client = asynq.NewClient(opt)
	return nil
}

// CloseClient closes the Asynq client connection gracefully.
func CloseClient() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// EnqueueNotificationFanout enqueues the fan-out task for an outbox event.
// Unique per event id so the sweeper and the request path cannot double-queue
// the same event; the notification write itself is also idempotent, so a
// duplicate run would be harmless anyway.
func EnqueueNotificationFanout(eventID string) error {
	payload, err := json.Marshal(map[string]string{
		"event_id": eventID,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(
		TaskNotificationFanout,
		payload,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
		asynq.Retention(24*time.Hour),
		asynq.Unique(time.Minute),
	)

	_, err = client.Enqueue(task)
	return err
}
