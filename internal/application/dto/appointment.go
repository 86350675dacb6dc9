package dto

import (
	"time"

	"tattooage/internal/domain/entity"
)

// CreateAppointmentRequest is the DTO for booking a new appointment.
type CreateAppointmentRequest struct {
	ClientID          uint   `json:"clientId"`
	ClientName        string `json:"clientName"`
	ArtistID          uint   `json:"artistId"`
	ArtistName        string `json:"artistName"`
	Date              string `json:"date"`      // "2006-01-02", local calendar date
	StartTime         string `json:"startTime"` // "15:04", local wall clock
	DesignDescription string `json:"designDescription"`
}

// RescheduleAppointmentRequest is the DTO for moving an appointment to a new
// date/time. DesignDescription is optional; empty leaves it unchanged.
type RescheduleAppointmentRequest struct {
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	DesignDescription string `json:"designDescription,omitempty"`
}

// ListAppointmentsFilter narrows a listing to one client or one artist.
type ListAppointmentsFilter struct {
	ClientID *uint
	ArtistID *uint
}

// AppointmentResponse is the DTO for sending appointment information to the client.
type AppointmentResponse struct {
	ID                uint      `json:"id"`
	ClientID          uint      `json:"clientId"`
	ClientName        string    `json:"clientName"`
	ArtistID          uint      `json:"artistId"`
	ArtistName        string    `json:"artistName"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	DesignDescription string    `json:"designDescription"`
	Status            string    `json:"status"`
	ReminderToken     *string   `json:"reminderToken"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToAppointmentResponse converts an entity.Appointment to an AppointmentResponse DTO.
func ToAppointmentResponse(a *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                a.ID,
		ClientID:          a.ClientID,
		ClientName:        a.ClientName,
		ArtistID:          a.ArtistID,
		ArtistName:        a.ArtistName,
		Date:              a.Date,
		StartTime:         a.StartTime,
		DesignDescription: a.DesignDescription,
		Status:            a.Status,
		ReminderToken:     a.ReminderToken,
		CreatedAt:         a.CreatedAt,
	}
}

// ToAppointmentResponseList converts a slice of entity.Appointment to a slice of AppointmentResponse DTOs.
func ToAppointmentResponseList(appointments []*entity.Appointment) []AppointmentResponse {
	list := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		list[i] = ToAppointmentResponse(a)
	}
	return list
}
