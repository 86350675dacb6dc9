package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "tattooage/internal/pkg/errors"
	"tattooage/internal/pkg/logger"
)

type fakeSender struct {
	mu       sync.Mutex
	pushes   []Payload
	probeErr error
	probes   int
}

func (f *fakeSender) Push(ctx context.Context, payload Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, payload)
	return nil
}

func (f *fakeSender) Probe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes++
	return f.probeErr
}

func (f *fakeSender) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func newTestRegistry(t *testing.T) (*Registry, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	r := NewRegistry(sender, logger.New())
	t.Cleanup(r.Stop)
	return r, sender
}

func TestRegistry_ScheduleReturnsUniqueTokens(t *testing.T) {
	r, _ := newTestRegistry(t)
	trigger := time.Now().Add(time.Hour)

	first, err := r.Schedule(context.Background(), trigger, Payload{Title: "a", AppointmentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Schedule(context.Background(), trigger, Payload{Title: "b", AppointmentID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == "" || second == "" {
		t.Fatal("expected non-empty tokens")
	}
	if first == second {
		t.Fatalf("expected distinct tokens, got %s twice", first)
	}
	if got := r.Pending(); got != 2 {
		t.Fatalf("expected 2 pending reminders, got %d", got)
	}
}

func TestRegistry_CancelIsIdempotent(t *testing.T) {
	r, _ := newTestRegistry(t)

	token, err := r.Schedule(context.Background(), time.Now().Add(time.Hour), Payload{AppointmentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Cancel(context.Background(), token); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := r.Cancel(context.Background(), token); err != nil {
		t.Fatalf("second cancel of same token must be a no-op, got: %v", err)
	}
	if err := r.Cancel(context.Background(), "never-issued"); err != nil {
		t.Fatalf("cancel of unknown token must be a no-op, got: %v", err)
	}
	if got := r.Pending(); got != 0 {
		t.Fatalf("expected 0 pending reminders, got %d", got)
	}
}

func TestRegistry_CancelAll(t *testing.T) {
	r, _ := newTestRegistry(t)

	for i := 0; i < 3; i++ {
		if _, err := r.Schedule(context.Background(), time.Now().Add(time.Hour), Payload{AppointmentID: uint(i + 1)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := r.CancelAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Pending(); got != 0 {
		t.Fatalf("expected 0 pending reminders after CancelAll, got %d", got)
	}
}

func TestRegistry_ScheduleAfterStopFails(t *testing.T) {
	sender := &fakeSender{}
	r := NewRegistry(sender, logger.New())
	r.Stop()

	_, err := r.Schedule(context.Background(), time.Now().Add(time.Hour), Payload{AppointmentID: 1})
	if !errors.Is(err, appErrors.ErrDeliveryUnavailable) {
		t.Fatalf("expected ErrDeliveryUnavailable, got %v", err)
	}
}

func TestRegistry_FarFutureEntrySurvivesEarlyYearMatch(t *testing.T) {
	r, sender := newTestRegistry(t)

	// More than a year out: the yearless cron spec matches the same
	// calendar date of the current year first.
	trigger := time.Now().AddDate(1, 0, 2)
	token, err := r.Schedule(context.Background(), trigger, Payload{Title: "next year", AppointmentID: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.fire(token, trigger, Payload{Title: "next year", AppointmentID: 5})

	if got := sender.pushCount(); got != 0 {
		t.Fatalf("expected no push on an early match, got %d", got)
	}
	if got := r.Pending(); got != 1 {
		t.Fatalf("expected entry to stay armed after early match, got %d pending", got)
	}
}

func TestRegistry_DueEntryPushesAndDropsToken(t *testing.T) {
	r, sender := newTestRegistry(t)

	trigger := time.Now().Add(30 * time.Second)
	token, err := r.Schedule(context.Background(), trigger, Payload{Title: "due", AppointmentID: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.fire(token, trigger, Payload{Title: "due", AppointmentID: 6})

	if got := sender.pushCount(); got != 1 {
		t.Fatalf("expected 1 push for a due trigger, got %d", got)
	}
	if got := r.Pending(); got != 0 {
		t.Fatalf("expected fired entry to be dropped, %d still pending", got)
	}
}

func TestRegistry_FiresAndForgetsEntry(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real cron tick")
	}
	r, sender := newTestRegistry(t)

	token, err := r.Schedule(context.Background(), time.Now().Add(2*time.Second), Payload{Title: "fire", AppointmentID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for sender.pushCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}

	if got := sender.pushCount(); got != 1 {
		t.Fatalf("expected 1 push, got %d", got)
	}
	if got := r.Pending(); got != 0 {
		t.Fatalf("expected fired entry to be dropped, %d still pending", got)
	}
	// Token of a fired reminder cancels as a no-op.
	if err := r.Cancel(context.Background(), token); err != nil {
		t.Fatalf("cancel of fired token must be a no-op, got: %v", err)
	}
}
