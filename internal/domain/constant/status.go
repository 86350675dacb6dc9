package constant

// AppointmentStatus defines the possible states of an appointment.
type AppointmentStatus string

const (
	// StatusPending represents an appointment that has been requested but not yet confirmed by the artist.
	StatusPending AppointmentStatus = "pending"
	// StatusConfirmed represents an appointment the artist has accepted.
	StatusConfirmed AppointmentStatus = "confirmed"
	// StatusCompleted represents an appointment whose session already took place.
	StatusCompleted AppointmentStatus = "completed"
	// StatusCancelled represents an appointment that was called off.
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether an appointment in this status still expects a reminder.
func (s AppointmentStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}
