package reminder

import (
	"errors"
	"testing"
	"time"

	appErrors "tattooage/internal/pkg/errors"
)

func TestComputeTrigger_FutureAppointment(t *testing.T) {
	now := time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)

	trigger, err := ComputeTrigger("2026-03-10", "15:00", now)
	if err != nil {
		t.Fatalf("expected trigger, got error: %v", err)
	}

	want := time.Date(2026, 3, 9, 15, 0, 0, 0, time.Local)
	if !trigger.Equal(want) {
		t.Fatalf("expected trigger %v, got %v", want, trigger)
	}
}

func TestComputeTrigger_PastTrigger(t *testing.T) {
	// Now is one hour past the would-be trigger (2026-03-09 15:00).
	now := time.Date(2026, 3, 9, 16, 0, 0, 0, time.Local)

	_, err := ComputeTrigger("2026-03-10", "15:00", now)
	if !errors.Is(err, appErrors.ErrPastTrigger) {
		t.Fatalf("expected ErrPastTrigger, got %v", err)
	}
}

func TestComputeTrigger_TriggerEqualToNowIsRejected(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 0, 0, 0, time.Local)

	_, err := ComputeTrigger("2026-03-10", "15:00", now)
	if !errors.Is(err, appErrors.ErrPastTrigger) {
		t.Fatalf("expected ErrPastTrigger for trigger == now, got %v", err)
	}
}

func TestComputeTrigger_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)

	first, err := ComputeTrigger("2026-03-10", "15:00", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeTrigger("2026-03-10", "15:00", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("expected identical triggers, got %v and %v", first, second)
	}
}

func TestComputeTrigger_InvalidInputs(t *testing.T) {
	now := time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		date string
		tod  string
	}{
		{"bad date", "10-03-2026", "15:00"},
		{"bad time", "2026-03-10", "3pm"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		if _, err := ComputeTrigger(tc.date, tc.tod, now); !errors.Is(err, appErrors.ErrInvalidDateTime) {
			t.Errorf("%s: expected ErrInvalidDateTime, got %v", tc.name, err)
		}
	}
}

func TestAppointmentInstant_LocalWallClock(t *testing.T) {
	at, err := AppointmentInstant("2026-03-10", "15:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	if !at.Equal(want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
	if at.Location() != time.Local {
		t.Fatalf("expected local location, got %v", at.Location())
	}
}
