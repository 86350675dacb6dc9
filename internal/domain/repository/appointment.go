package repository

import (
	"context"
	"tattooage/internal/domain/entity"
)

// AppointmentRepository defines the interface for appointment data operations.
// The reminder-token column is written either through Update (full record) or
// through UpdateReminderToken, which the reminder lifecycle uses so that every
// token transition pairs with exactly one store write.
type AppointmentRepository interface {
	// FindByID retrieves an appointment by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Appointment, error)
	// FindAll retrieves all appointments in insertion order (used for restoring schedules on startup).
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	// FindByClientID retrieves all appointments of a client in insertion order.
	FindByClientID(ctx context.Context, clientID uint) ([]*entity.Appointment, error)
	// FindByArtistID retrieves all appointments of an artist in insertion order.
	FindByArtistID(ctx context.Context, artistID uint) ([]*entity.Appointment, error)
	// Create creates a new appointment. Returns the ID of the created appointment.
	Create(ctx context.Context, appointment *entity.Appointment) (uint, error)
	// Update updates an existing appointment.
	Update(ctx context.Context, appointment *entity.Appointment) error
	// UpdateReminderToken sets or clears (nil) the reminder token of an appointment.
	UpdateReminderToken(ctx context.Context, id uint, token *string) error
	// Delete deletes an appointment by its ID.
	Delete(ctx context.Context, id uint) error
}
