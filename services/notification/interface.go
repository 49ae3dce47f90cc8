package notification

import (
	"context"
	"time"
)

// Booking carries the details of an accepted booking for the owner's
// notification message.
type Booking struct {
	AttendeeName  string
	AttendeeEmail string
	Topic         string
	Start         time.Time
	Duration      time.Duration
}

// Notifier pushes a booking notification to the owner. Notification is best
// effort: a failure is logged by the caller, never surfaced to the visitor,
// since the event is already committed by the time it is attempted.
type Notifier interface {
	NotifyBooking(ctx context.Context, b Booking) error
}
