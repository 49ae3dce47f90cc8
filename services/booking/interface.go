package booking

import (
	"context"

	"bookable/models"
)

// Service defines the booking flow exposed to the HTTP layer.
type Service interface {
	// PublicConfig returns the schedule parameters the booking page may see.
	PublicConfig() models.PublicConfig

	// AvailableSlots computes the bookable slots for the default window,
	// from now up to MAX_DAYS_AHEAD days ahead.
	AvailableSlots(ctx context.Context) ([]models.AvailableSlot, error)

	// Book validates the request against freshly fetched busy intervals and
	// commits it to the calendar provider.
	Book(ctx context.Context, req models.BookingRequest) (*models.BookedEvent, error)
}
