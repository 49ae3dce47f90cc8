package booking

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookable/config"
	"bookable/models"
	"bookable/services/availability"
	"bookable/services/calendar"
	"bookable/services/notification"
	"bookable/utils"
)

// emailPattern is a shape check, not RFC validation: something before the @,
// something after, a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const notifyTimeout = 10 * time.Second

// DefaultBookingService implements Service on top of the availability engine,
// the calendar provider and the notification channel.
type DefaultBookingService struct {
	Cfg      *config.Config
	Calendar calendar.Provider
	Notifier notification.Notifier
	Lock     utils.BookingLock

	// Clock overrides time.Now; tests set it, production leaves it nil.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().In(s.Cfg.Location())
}

// PublicConfig returns the schedule parameters the booking page may see.
func (s *DefaultBookingService) PublicConfig() models.PublicConfig {
	return models.PublicConfig{
		OwnerName:         s.Cfg.OwnerName,
		Timezone:          s.Cfg.Timezone,
		SlotDuration:      s.Cfg.SlotDurationMinutes,
		WorkingHoursStart: s.Cfg.WorkingHoursStart,
		WorkingHoursEnd:   s.Cfg.WorkingHoursEnd,
		WorkingDays:       s.Cfg.WorkingDays(),
		MaxDaysAhead:      s.Cfg.MaxDaysAhead,
	}
}

// AvailableSlots fetches the owner's busy intervals for the default window
// and runs the engine over them. A provider failure is surfaced, never
// returned as a silently empty list.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context) ([]models.AvailableSlot, error) {
	now := s.now()
	windowEnd := now.AddDate(0, 0, s.Cfg.MaxDaysAhead)

	busy, err := s.Calendar.ListEvents(ctx, now, windowEnd)
	if err != nil {
		return nil, NewProviderError("could not fetch calendar events", err)
	}
	return availability.ComputeSlots(s.Cfg, busy, now, windowEnd, now), nil
}

// Book validates the request, re-checks the slot against freshly fetched
// busy intervals under the commit lock, creates the calendar event, and
// notifies the owner best-effort.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookedEvent, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, NewValidationError("name and email are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, NewValidationError("invalid email format")
	}

	slotStart, err := time.Parse(time.RFC3339, req.Slot)
	if err != nil {
		return nil, NewValidationError("invalid slot time")
	}
	slotStart = slotStart.In(s.Cfg.Location())
	if !availability.OnGrid(s.Cfg, slotStart) {
		return nil, NewValidationError("slot is outside bookable hours")
	}
	slotEnd := slotStart.Add(s.Cfg.SlotDuration())

	// Serialize the commit section: the slot list shown to the client may be
	// stale, so availability is re-established from fresh data, and the lock
	// keeps a concurrent request for the same slot from racing the re-check.
	release, err := s.Lock.Acquire(ctx)
	if err != nil {
		return nil, NewProviderError("could not acquire booking lock", err)
	}
	defer release()

	busy, err := s.Calendar.ListEvents(ctx, slotStart.AddDate(0, 0, -1), slotEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, NewProviderError("could not verify slot availability", err)
	}
	now := s.now()
	if !availability.MeetsNotice(s.Cfg, slotStart, now) {
		return nil, NewConflictError("slot is no longer available")
	}
	if availability.Conflicts(s.Cfg, busy, slotStart, slotEnd) {
		return nil, NewConflictError("slot is no longer available")
	}

	topic := strings.TrimSpace(req.Topic)
	title := fmt.Sprintf("Meeting with %s", name)
	if topic != "" {
		title = fmt.Sprintf("%s - %s", topic, name)
	}
	description := fmt.Sprintf("Topic: %s\nAttendee: %s <%s>\nBooking reference: %s",
		orNotSpecified(topic), name, email, uuid.New().String())

	event, err := s.Calendar.CreateEvent(ctx, calendar.EventInput{
		Title:         title,
		Description:   description,
		Start:         slotStart,
		End:           slotEnd,
		AttendeeEmail: email,
	})
	if err != nil {
		return nil, NewProviderError("could not create calendar event", err)
	}

	s.notifyOwner(notification.Booking{
		AttendeeName:  name,
		AttendeeEmail: email,
		Topic:         topic,
		Start:         slotStart,
		Duration:      s.Cfg.SlotDuration(),
	})
	return event, nil
}

// notifyOwner pushes the notification in the background. The booking is
// already committed; a notification failure is logged, never propagated.
func (s *DefaultBookingService) notifyOwner(b notification.Booking) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.Notifier.NotifyBooking(ctx, b); err != nil {
			utils.GetLogger().Warn("booking notification failed",
				zap.String("attendee", b.AttendeeEmail), zap.Error(err))
		}
	}()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
