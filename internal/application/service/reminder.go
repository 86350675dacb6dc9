package service

import (
	"context"

	"tattooage/internal/domain/entity"
)

// ReminderService keeps the reminder-token lifecycle aligned with appointment
// mutations. A reminder is a courtesy on top of appointment management:
// every failure inside this service is caught and logged, never surfaced, so
// the enclosing appointment operation always succeeds or fails on its own.
//
// Operations for the same appointment are serialized internally; operations
// on different appointments may run concurrently.
type ReminderService interface {
	// OnAppointmentCreated computes the trigger instant, schedules a reminder
	// and persists the resulting token. Returns nil when scheduling was
	// skipped (past trigger, permission denied) or failed.
	OnAppointmentCreated(ctx context.Context, appointment *entity.Appointment) *string
	// OnAppointmentRescheduled cancels the previous reminder (best-effort) and
	// schedules one for the new date/time, replacing the stored token.
	OnAppointmentRescheduled(ctx context.Context, appointment *entity.Appointment, oldToken *string) *string
	// OnAppointmentCancelled cancels the pending reminder (best-effort) and
	// clears the stored token. Safe to call with a nil token.
	OnAppointmentCancelled(ctx context.Context, appointmentID uint, oldToken *string)
	// RestoreSchedules re-registers reminders for active appointments on
	// startup and clears tokens that went stale across the restart.
	RestoreSchedules(ctx context.Context) error
}
