package service

import (
	"context"

	"tattooage/internal/application/dto"
	"tattooage/internal/domain/constant"
	"tattooage/internal/domain/entity"
)

// AppointmentService defines the interface for appointment-related business
// logic. Reminder scheduling rides along with every mutation but can never
// make one fail.
type AppointmentService interface {
	// Create books a new appointment (status pending) and schedules its reminder.
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (*entity.Appointment, error)
	// Get retrieves an appointment by ID.
	Get(ctx context.Context, id uint) (*entity.Appointment, error)
	// List retrieves appointments, optionally filtered by client or artist.
	List(ctx context.Context, filter dto.ListAppointmentsFilter) ([]*entity.Appointment, error)
	// Reschedule moves an appointment to a new date/time and replaces its reminder.
	Reschedule(ctx context.Context, id uint, req dto.RescheduleAppointmentRequest) (*entity.Appointment, error)
	// UpdateStatus transitions an appointment to the given status. The
	// cancelled transition also cancels the pending reminder.
	UpdateStatus(ctx context.Context, id uint, status constant.AppointmentStatus) (*entity.Appointment, error)
	// Delete removes an appointment and cancels its reminder.
	Delete(ctx context.Context, id uint) error
}
