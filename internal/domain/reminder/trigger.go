package reminder

import (
	"fmt"
	"time"

	appErrors "tattooage/internal/pkg/errors"
)

const (
	// DateLayout is the wall-clock calendar date format of an appointment.
	DateLayout = "2006-01-02"
	// TimeLayout is the wall-clock time-of-day format of an appointment.
	TimeLayout = "15:04"
	// LeadTime is how far ahead of the appointment instant the reminder fires.
	LeadTime = 24 * time.Hour
)

// AppointmentInstant combines a calendar date and a time-of-day into one
// absolute local instant. Both values are treated as device-local wall clock;
// no timezone normalization is applied.
func AppointmentInstant(date, timeOfDay string) (time.Time, error) {
	at, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", appErrors.ErrInvalidDateTime, err)
	}
	return at, nil
}

// ComputeTrigger returns the reminder trigger instant for an appointment:
// the appointment instant minus LeadTime. It returns ErrPastTrigger when the
// candidate trigger is not strictly after now; callers must not schedule in
// that case.
func ComputeTrigger(date, timeOfDay string, now time.Time) (time.Time, error) {
	at, err := AppointmentInstant(date, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	trigger := at.Add(-LeadTime)
	if !trigger.After(now) {
		return time.Time{}, appErrors.ErrPastTrigger
	}
	return trigger, nil
}
