package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"walegrills/models"
)

func TestReminderTime(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	got, err := ReminderTime("2026-10-31", 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 10, 28, ReminderHour, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ReminderTime("2026-10-17", 3, now)
	if err != nil || !got.Equal(now) {
		t.Errorf("expected overdue reminder to fire now, got %v, %v", got, err)
	}

	if _, err := ReminderTime("31/10/2026", 3, now); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestNewBalanceReminderTask(t *testing.T) {
	payload := models.BalanceReminderPayload{BookingReference: "bk_1", Email: "a@b.co", EventDate: "2026-10-31", Balance: 525.3}
	task, opts, err := NewBalanceReminderTask(payload, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeBalanceReminder || len(opts) != 3 {
		t.Errorf("unexpected task %s with %d options", task.Type(), len(opts))
	}
	var decoded models.BalanceReminderPayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil || decoded != payload {
		t.Errorf("payload round trip: %+v, %v", decoded, err)
	}
}
