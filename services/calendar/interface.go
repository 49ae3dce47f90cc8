package calendar

import (
	"context"
	"time"

	"bookable/models"
)

// EventInput carries the fields of a calendar event to be created for an
// accepted booking.
type EventInput struct {
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// Provider is the calendar backend: the source of busy intervals and the
// system of record for committed bookings.
type Provider interface {
	// ListEvents returns the owner's commitments intersecting the half-open
	// range [from, to). An empty calendar returns a nil slice, not an error.
	ListEvents(ctx context.Context, from, to time.Time) ([]models.Interval, error)

	// CreateEvent creates an event and returns its id and user-facing link.
	CreateEvent(ctx context.Context, input EventInput) (*models.BookedEvent, error)
}
