package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"walegrills/models"

	"github.com/hibiken/asynq"
)

const TypeBalanceReminder = "booking:balance-reminder"

// ReminderHour is the UTC hour reminders fire on their due day.
const ReminderHour = 9

func NewBalanceReminderTask(payload models.BalanceReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBalanceReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("balance:" + payload.BookingReference),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ReminderTime returns when the balance reminder for an event on eventDate
// (YYYY-MM-DD) should fire. Reminders already due fire at now.
func ReminderTime(eventDate string, daysBefore int, now time.Time) (time.Time, error) {
	d, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date %q: %w", eventDate, err)
	}
	fireAt := time.Date(d.Year(), d.Month(), d.Day(), ReminderHour, 0, 0, 0, time.UTC).AddDate(0, 0, -daysBefore)
	if fireAt.Before(now) {
		return now, nil
	}
	return fireAt, nil
}

// ReminderScheduler queues balance reminders for deposit bookings.
type ReminderScheduler interface {
	ScheduleBalanceReminder(ctx context.Context, payload models.BalanceReminderPayload) error
}

// AsynqReminderScheduler enqueues reminders on the task Redis database.
type AsynqReminderScheduler struct {
	Client     *asynq.Client
	DaysBefore int
	Now        func() time.Time
}

func NewAsynqReminderScheduler(opt asynq.RedisClientOpt, daysBefore int) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: asynq.NewClient(opt), DaysBefore: daysBefore, Now: time.Now}
}

func (s *AsynqReminderScheduler) ScheduleBalanceReminder(ctx context.Context, payload models.BalanceReminderPayload) error {
	fireAt, err := ReminderTime(payload.EventDate, s.DaysBefore, s.Now())
	if err != nil {
		return err
	}
	task, opts, err := NewBalanceReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.Client.Close()
}
