package sqlite

import (
	"context"
	"errors"
	"fmt"

	"tattooage/internal/domain/entity"
	"tattooage/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID retrieves an appointment by its ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find appointment by id %d: %w", id, err)
	}
	return &appointment, nil
}

// FindAll retrieves all appointments in insertion order (used for restoring schedules on startup).
func (r *appointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	if err := r.db.WithContext(ctx).Order("id asc").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to find all appointments: %w", err)
	}
	return appointments, nil
}

// FindByClientID retrieves all appointments of a client in insertion order.
func (r *appointmentRepository) FindByClientID(ctx context.Context, clientID uint) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id asc").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointments by client_id %d: %w", clientID, err)
	}
	return appointments, nil
}

// FindByArtistID retrieves all appointments of an artist in insertion order.
func (r *appointmentRepository) FindByArtistID(ctx context.Context, artistID uint) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	if err := r.db.WithContext(ctx).Where("artist_id = ?", artistID).Order("id asc").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointments by artist_id %d: %w", artistID, err)
	}
	return appointments, nil
}

// Create creates a new appointment. Returns the ID of the created appointment.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) (uint, error) {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return 0, fmt.Errorf("failed to create appointment for client %d: %w", appointment.ClientID, err)
	}
	return appointment.ID, nil
}

// Update updates an existing appointment.
func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	// Use Save to update all fields, including zero values
	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment %d: %w", appointment.ID, err)
	}
	return nil
}

// UpdateReminderToken sets or clears (nil) the reminder token of an appointment.
func (r *appointmentRepository) UpdateReminderToken(ctx context.Context, id uint, token *string) error {
	if err := r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id).Update("reminder_token", token).Error; err != nil {
		return fmt.Errorf("failed to update reminder token for appointment %d: %w", id, err)
	}
	return nil
}

// Delete deletes an appointment by its ID.
func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Appointment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	return nil
}
