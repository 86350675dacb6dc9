package service

import (
	"context"
	"errors"
	"fmt"

	"tattooage/internal/application/dto"
	"tattooage/internal/domain/constant"
	"tattooage/internal/domain/entity"
	"tattooage/internal/domain/reminder"
	"tattooage/internal/domain/repository"
	appErrors "tattooage/internal/pkg/errors"
	"tattooage/internal/pkg/logger"

	"gorm.io/gorm"
)

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	reminderSvc     ReminderService
	log             logger.Logger
}

// NewAppointmentService creates a new instance of AppointmentService implementation.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	reminderSvc ReminderService,
	log logger.Logger,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		reminderSvc:     reminderSvc,
		log:             log,
	}
}

// Create books a new appointment and schedules its reminder. Reminder failure
// is invisible to the caller: the appointment is reported created regardless.
func (s *appointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	if _, err := reminder.AppointmentInstant(req.Date, req.StartTime); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClientID:          req.ClientID,
		ClientName:        req.ClientName,
		ArtistID:          req.ArtistID,
		ArtistName:        req.ArtistName,
		Date:              req.Date,
		StartTime:         req.StartTime,
		DesignDescription: req.DesignDescription,
		Status:            constant.StatusPending.String(),
	}
	if _, err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create appointment for client %d", req.ClientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created appointment %d for client %d with artist %d", appointment.ID, req.ClientID, req.ArtistID))

	// Best-effort: sets appointment.ReminderToken when scheduling succeeds.
	s.reminderSvc.OnAppointmentCreated(ctx, appointment)

	return appointment, nil
}

// Get retrieves an appointment by ID.
func (s *appointmentService) Get(ctx context.Context, id uint) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAppointmentNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get appointment %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return appointment, nil
}

// List retrieves appointments, optionally filtered by client or artist.
func (s *appointmentService) List(ctx context.Context, filter dto.ListAppointmentsFilter) ([]*entity.Appointment, error) {
	var (
		appointments []*entity.Appointment
		err          error
	)
	switch {
	case filter.ClientID != nil:
		appointments, err = s.appointmentRepo.FindByClientID(ctx, *filter.ClientID)
	case filter.ArtistID != nil:
		appointments, err = s.appointmentRepo.FindByArtistID(ctx, *filter.ArtistID)
	default:
		appointments, err = s.appointmentRepo.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to list appointments", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return appointments, nil
}

// Reschedule moves an appointment to a new date/time and replaces its reminder.
func (s *appointmentService) Reschedule(ctx context.Context, id uint, req dto.RescheduleAppointmentRequest) (*entity.Appointment, error) {
	if _, err := reminder.AppointmentInstant(req.Date, req.StartTime); err != nil {
		return nil, err
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldToken := appointment.ReminderToken
	appointment.Date = req.Date
	appointment.StartTime = req.StartTime
	if req.DesignDescription != "" {
		appointment.DesignDescription = req.DesignDescription
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update appointment %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Rescheduled appointment %d to %s %s", id, req.Date, req.StartTime))

	// Best-effort reminder reconciliation; updates appointment.ReminderToken.
	s.reminderSvc.OnAppointmentRescheduled(ctx, appointment, oldToken)

	return appointment, nil
}

// UpdateStatus transitions an appointment to the given status.
func (s *appointmentService) UpdateStatus(ctx context.Context, id uint, status constant.AppointmentStatus) (*entity.Appointment, error) {
	if !status.Valid() {
		return nil, appErrors.ErrInvalidStatus
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.Status = status.String()
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update status of appointment %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Appointment %d transitioned to %s", id, status))

	if status == constant.StatusCancelled {
		s.reminderSvc.OnAppointmentCancelled(ctx, appointment.ID, appointment.ReminderToken)
		appointment.ReminderToken = nil
	}
	// A completed appointment keeps any still-pending reminder; the session
	// already happened, the reminder fires or expires on its own.

	return appointment, nil
}

// Delete removes an appointment and cancels its reminder.
func (s *appointmentService) Delete(ctx context.Context, id uint) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	// Cancel before the record disappears, like any other cancellation.
	s.reminderSvc.OnAppointmentCancelled(ctx, appointment.ID, appointment.ReminderToken)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete appointment %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted appointment %d", id))
	return nil
}
