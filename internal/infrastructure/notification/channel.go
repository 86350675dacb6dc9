package notification

import (
	"context"
	"time"
)

// ChannelID identifies the delivery channel appointment reminders are
// published on. Stamped on every payload so the delivery side can group them.
const ChannelID = "appointments"

// Payload is the content of one scheduled reminder. Channel and
// AppointmentID are opaque grouping/correlation data; the delivery side does
// not interpret them.
type Payload struct {
	Channel       string
	Title         string
	Body          string
	AppointmentID uint
}

// Channel is the delivery registry for scheduled reminders.
//
// Schedule returns an opaque token unique within the registry. Cancel of an
// unknown, already-fired or already-cancelled token is a no-op, never an
// error surfaced to the caller. CancelAll is bulk teardown, not tied to
// individual appointments.
type Channel interface {
	Schedule(ctx context.Context, trigger time.Time, payload Payload) (string, error)
	Cancel(ctx context.Context, token string) error
	CancelAll(ctx context.Context) error
}

// Sender pushes a reminder payload to its recipient the moment it fires, and
// can probe whether the platform accepts pushes at all.
type Sender interface {
	Push(ctx context.Context, payload Payload) error
	Probe(ctx context.Context) error
}

// Gate reports whether the process is authorized to deliver notifications.
type Gate interface {
	Ensure(ctx context.Context) bool
}
