package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	appErrors "tattooage/internal/pkg/errors"
	"tattooage/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Registry is a cron-backed delivery channel. Every scheduled reminder is a
// one-shot cron entry addressed by an opaque token; when the entry fires it
// pushes the payload through the Sender and removes itself.
type Registry struct {
	cron    *cron.Cron
	sender  Sender
	log     logger.Logger
	mu      sync.Mutex // Protects entries and stopped
	entries map[string]cron.EntryID
	stopped bool
}

// NewRegistry creates and starts a new reminder registry.
func NewRegistry(sender Sender, log logger.Logger) *Registry {
	c := cron.New(cron.WithSeconds()) // Use seconds precision
	c.Start()
	log.Info("Notification registry started.")
	return &Registry{
		cron:    c,
		sender:  sender,
		log:     log,
		entries: make(map[string]cron.EntryID),
	}
}

// oneShotSpec generates a cron spec matching a single wall-clock instant.
func oneShotSpec(t time.Time) string {
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", t.Second(), t.Minute(), t.Hour(), t.Day(), t.Month())
}

// Schedule registers a reminder to be pushed at the trigger instant and
// returns its token. Fails with ErrDeliveryUnavailable once the registry is
// stopped or when the underlying cron rejects the entry.
func (r *Registry) Schedule(ctx context.Context, trigger time.Time, payload Payload) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return "", appErrors.ErrDeliveryUnavailable
	}

	token := uuid.NewString()
	entryID, err := r.cron.AddFunc(oneShotSpec(trigger), func() {
		r.fire(token, trigger, payload)
	})
	if err != nil {
		r.log.Error("Failed to add reminder entry", err)
		return "", fmt.Errorf("%w: %v", appErrors.ErrDeliveryUnavailable, err)
	}

	r.entries[token] = entryID
	r.log.Info(fmt.Sprintf("Scheduled reminder %s for appointment %d at %v", token, payload.AppointmentID, trigger.Format("2006-01-02 15:04:05")))
	return token, nil
}

// fire delivers a due reminder. The cron spec carries no year field, so an
// entry whose trigger lies more than a year out first matches the same
// calendar date of an earlier year; on such an early match the entry stays
// armed and waits for the real trigger.
func (r *Registry) fire(token string, trigger time.Time, payload Payload) {
	if time.Now().Before(trigger.Add(-time.Minute)) {
		r.log.Debug(fmt.Sprintf("Reminder %s matched before its trigger %v, staying armed", token, trigger.Format("2006-01-02 15:04:05")))
		return
	}
	if err := r.sender.Push(context.Background(), payload); err != nil {
		r.log.Error(fmt.Sprintf("Failed to push reminder %s for appointment %d", token, payload.AppointmentID), err)
	}
	// One-off entry: drop it after firing so the token becomes unknown.
	r.remove(token)
}

func (r *Registry) remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entryID, ok := r.entries[token]; ok {
		r.cron.Remove(entryID)
		delete(r.entries, token)
	}
}

// Cancel removes a scheduled reminder. Cancelling an unknown, already-fired
// or already-cancelled token is a no-op.
func (r *Registry) Cancel(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entryID, ok := r.entries[token]
	if !ok {
		r.log.Debug(fmt.Sprintf("No scheduled reminder found for token %s, nothing to cancel.", token))
		return nil
	}
	r.cron.Remove(entryID)
	delete(r.entries, token)
	r.log.Info(fmt.Sprintf("Cancelled scheduled reminder %s", token))
	return nil
}

// CancelAll removes every scheduled reminder. Used for bulk teardown.
func (r *Registry) CancelAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, entryID := range r.entries {
		r.cron.Remove(entryID)
		delete(r.entries, token)
	}
	r.log.Info("Cancelled all scheduled reminders.")
	return nil
}

// Pending returns the number of live scheduled reminders.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Stop shuts the registry down, waiting for running jobs to complete.
// Subsequent Schedule calls fail with ErrDeliveryUnavailable.
func (r *Registry) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	<-r.cron.Stop().Done() // Wait for running jobs to complete
	r.log.Info("Notification registry stopped.")
}
