package errors

import "errors"

// Custom application errors
var (
	ErrPastTrigger         = errors.New("reminder trigger instant is in the past")   // Trigger computed to a past instant, scheduling skipped
	ErrInvalidDateTime     = errors.New("invalid appointment date or time")          // Date or time-of-day failed to parse
	ErrDeliveryUnavailable = errors.New("notification delivery channel unavailable") // Delivery registry cannot accept the request
	ErrAppointmentNotFound = errors.New("appointment not found")                     // Appointment lookup miss
	ErrInvalidStatus       = errors.New("invalid appointment status")                // Unknown status value requested
	ErrDatabaseOperation   = errors.New("database operation failed")                 // Generic database error
)
