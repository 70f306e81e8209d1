package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mohanreddy3010/Blogging-Platform/internal/config"
)

// StartScheduler creates and starts an Asynq Scheduler that periodically
// enqueues the outbox sweep. Returns a stop function for graceful shutdown.
func StartScheduler(cfg *config.Config) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			LogLevel: asynq.InfoLevel,
			Logger:   &asynqLoggerAdapter{logger: logger},
		},
	)

	task := asynq.NewTask(
		TaskOutboxSweep,
		nil, // empty payload, handler queries pending events itself
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(time.Hour),
		asynq.Unique(time.Minute), // prevent duplicate if scheduler runs twice
	)

	entryID, err := scheduler.Register(cfg.OutboxSweepSchedule, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register outbox sweep schedule: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info(
		"Scheduler started",
		"schedule", cfg.OutboxSweepSchedule,
		"entry_id", entryID,
	)

	return func() { scheduler.Shutdown() }, nil
}
