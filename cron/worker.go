package cron

import (
	"context"
	"encoding/json"
	"time"

	"walegrills/models"
	"walegrills/services/events"
	"walegrills/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the balance reminder worker in the background until ctx is done.
func InitReminderWorker(ctx context.Context, redisOpts asynq.RedisClientOpt, publisher events.Publisher, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBalanceReminder, HandleBalanceReminder(publisher, logger))

	go monitorRedisConnection(ctx, redisOpts, logger)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker gave up; balance reminders will queue until restart")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleBalanceReminder turns a due reminder into a balance.due event.
func HandleBalanceReminder(publisher events.Publisher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BalanceReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid balance reminder payload", zap.Error(err))
			return asynq.SkipRetry
		}

		logger.Info("Balance reminder due",
			zap.String("booking", p.BookingReference),
			zap.String("eventDate", p.EventDate),
			zap.Float64("balance", p.Balance))

		if err := publisher.Publish(ctx, events.NewEvent(events.TypeBalanceDue, p.BookingReference, p)); err != nil {
			logger.Error("Failed to publish balance reminder", zap.String("booking", p.BookingReference), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the task database periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, opts asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Reminder queue Redis unreachable", zap.Error(err))
			}
		}
	}
}
