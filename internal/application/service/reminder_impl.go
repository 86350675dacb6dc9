package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tattooage/internal/domain/constant"
	"tattooage/internal/domain/entity"
	"tattooage/internal/domain/reminder"
	"tattooage/internal/domain/repository"
	"tattooage/internal/infrastructure/notification"
	appErrors "tattooage/internal/pkg/errors"
	"tattooage/internal/pkg/logger"
)

const reminderTitle = "Appointment reminder - TattooAge"

type reminderService struct {
	appointmentRepo repository.AppointmentRepository
	channel         notification.Channel
	gate            notification.Gate
	log             logger.Logger

	// Per-appointment locks so create/reschedule/cancel for one appointment
	// never run concurrently. map access guarded by mu.
	mu    sync.Mutex
	locks map[uint]*apptLock

	deniedLogOnce sync.Once
}

// apptLock is a reference-counted per-appointment mutex. Counting lets the
// lock map drop entries once no operation holds or waits on them, so deleted
// appointments do not pin memory.
type apptLock struct {
	mu   sync.Mutex
	refs int
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	appointmentRepo repository.AppointmentRepository,
	channel notification.Channel,
	gate notification.Gate,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		appointmentRepo: appointmentRepo,
		channel:         channel,
		gate:            gate,
		log:             log,
		locks:           make(map[uint]*apptLock),
	}
}

func (s *reminderService) acquire(appointmentID uint) *apptLock {
	s.mu.Lock()
	l, ok := s.locks[appointmentID]
	if !ok {
		l = &apptLock{}
		s.locks[appointmentID] = l
	}
	l.refs++
	s.mu.Unlock()
	l.mu.Lock()
	return l
}

func (s *reminderService) release(appointmentID uint, l *apptLock) {
	l.mu.Unlock()
	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, appointmentID)
	}
	s.mu.Unlock()
}

// buildPayload renders the reminder content for the client: the counterpart
// is the artist.
func buildPayload(appointment *entity.Appointment) notification.Payload {
	return notification.Payload{
		Channel:       notification.ChannelID,
		Title:         reminderTitle,
		Body:          fmt.Sprintf("Tomorrow you have an appointment with %s at %s. Design: %s", appointment.ArtistName, appointment.StartTime, appointment.DesignDescription),
		AppointmentID: appointment.ID,
	}
}

// OnAppointmentCreated computes the trigger instant, schedules a reminder and
// persists the resulting token.
func (s *reminderService) OnAppointmentCreated(ctx context.Context, appointment *entity.Appointment) *string {
	l := s.acquire(appointment.ID)
	defer s.release(appointment.ID, l)

	return s.scheduleLocked(ctx, appointment)
}

// onRecordToken reads the reminder token currently persisted for the
// appointment, or nil when the record cannot be read.
func (s *reminderService) onRecordToken(ctx context.Context, appointmentID uint) *string {
	appointment, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil
	}
	return appointment.ReminderToken
}

// liveTokens collects the distinct tokens that may still address a live
// schedule: the caller's snapshot plus whatever is on record right now. The
// snapshot alone is not enough; it can go stale while the operation waits on
// the appointment's lock, and cancelling only the stale value would leave the
// replacement reminder live.
func (s *reminderService) liveTokens(ctx context.Context, appointmentID uint, snapshot *string) []string {
	tokens := make([]string, 0, 2)
	if snapshot != nil && *snapshot != "" {
		tokens = append(tokens, *snapshot)
	}
	if current := s.onRecordToken(ctx, appointmentID); current != nil && *current != "" && (snapshot == nil || *current != *snapshot) {
		tokens = append(tokens, *current)
	}
	return tokens
}

// scheduleLocked runs the schedule-and-persist half of reconciliation. The
// caller must hold the appointment's lock. On success the token has been
// written to the store and set on the entity; on any failure nil is returned
// and neither system of record has been left with a half-applied reminder.
func (s *reminderService) scheduleLocked(ctx context.Context, appointment *entity.Appointment) *string {
	trigger, err := reminder.ComputeTrigger(appointment.Date, appointment.StartTime, time.Now())
	if err != nil {
		if errors.Is(err, appErrors.ErrPastTrigger) {
			s.log.Warn(fmt.Sprintf("Reminder trigger for appointment %d is in the past, skipping scheduling.", appointment.ID))
		} else {
			s.log.Error(fmt.Sprintf("Failed to compute reminder trigger for appointment %d", appointment.ID), err)
		}
		return nil
	}

	if !s.gate.Ensure(ctx) {
		s.deniedLogOnce.Do(func() {
			s.log.Warn("Notification permission denied, reminders will not be scheduled this session.")
		})
		return nil
	}

	token, err := s.channel.Schedule(ctx, trigger, buildPayload(appointment))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to schedule reminder for appointment %d", appointment.ID), err)
		return nil
	}

	if err := s.appointmentRepo.UpdateReminderToken(ctx, appointment.ID, &token); err != nil {
		// Keep the store and the registry in step: a token the record does
		// not know about is worse than no reminder at all.
		s.log.Error(fmt.Sprintf("Failed to persist reminder token for appointment %d, cancelling schedule", appointment.ID), err)
		if cancelErr := s.channel.Cancel(ctx, token); cancelErr != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel orphaned reminder %s for appointment %d", token, appointment.ID), cancelErr)
		}
		return nil
	}

	appointment.ReminderToken = &token
	s.log.Info(fmt.Sprintf("Scheduled reminder %s for appointment %d at %v", token, appointment.ID, trigger.Format("2006-01-02 15:04")))
	return &token
}

// OnAppointmentRescheduled cancels the previous reminder (best-effort) and
// schedules one for the new date/time, replacing the stored token.
func (s *reminderService) OnAppointmentRescheduled(ctx context.Context, appointment *entity.Appointment, oldToken *string) *string {
	l := s.acquire(appointment.ID)
	defer s.release(appointment.ID, l)

	for _, token := range s.liveTokens(ctx, appointment.ID, oldToken) {
		if err := s.channel.Cancel(ctx, token); err != nil {
			// Treated as already effectively cancelled.
			s.log.Warn(fmt.Sprintf("Failed to cancel superseded reminder %s for appointment %d: %v", token, appointment.ID, err))
		}
	}
	appointment.ReminderToken = nil

	token := s.scheduleLocked(ctx, appointment)
	if token == nil {
		// The old token is gone either way; make sure the store agrees.
		if err := s.appointmentRepo.UpdateReminderToken(ctx, appointment.ID, nil); err != nil {
			s.log.Error(fmt.Sprintf("Failed to clear reminder token for appointment %d after reschedule", appointment.ID), err)
		}
	}
	return token
}

// OnAppointmentCancelled cancels the pending reminder (best-effort) and
// clears the stored token.
func (s *reminderService) OnAppointmentCancelled(ctx context.Context, appointmentID uint, oldToken *string) {
	l := s.acquire(appointmentID)
	defer s.release(appointmentID, l)

	tokens := s.liveTokens(ctx, appointmentID, oldToken)
	if len(tokens) == 0 {
		return
	}

	for _, token := range tokens {
		if err := s.channel.Cancel(ctx, token); err != nil {
			// Treated as already effectively cancelled.
			s.log.Warn(fmt.Sprintf("Failed to cancel reminder %s for appointment %d: %v", token, appointmentID, err))
		}
	}
	if err := s.appointmentRepo.UpdateReminderToken(ctx, appointmentID, nil); err != nil {
		// The record may already be gone when cancellation rides a delete.
		s.log.Debug(fmt.Sprintf("Could not clear reminder token for appointment %d: %v", appointmentID, err))
	}
	s.log.Info(fmt.Sprintf("Cancelled reminder for appointment %d", appointmentID))
}

// RestoreSchedules re-registers reminders for active appointments on startup.
// Registry tokens do not survive a restart, so every stored token is either
// replaced by a fresh schedule or cleared.
func (s *reminderService) RestoreSchedules(ctx context.Context) error {
	s.log.Info("Restoring reminder schedules from database...")
	appointments, err := s.appointmentRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load appointments for reminder restore", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	restored := 0
	cleared := 0
	for _, appointment := range appointments {
		if constant.AppointmentStatus(appointment.Status).Active() {
			if s.OnAppointmentRescheduled(ctx, appointment, appointment.ReminderToken) != nil {
				restored++
			} else {
				cleared++
			}
			continue
		}
		if appointment.ReminderToken != nil {
			s.OnAppointmentCancelled(ctx, appointment.ID, appointment.ReminderToken)
			cleared++
		}
	}

	s.log.Info(fmt.Sprintf("Reminder restore complete. Rescheduled: %d, Cleared: %d", restored, cleared))
	return nil
}
