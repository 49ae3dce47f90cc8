package models

import "time"

// Interval is a half-open time range [Start, End) in absolute time.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailableSlot is a bookable meeting time offered to a visitor.
// End is always Start plus the configured slot duration.
type AvailableSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingRequest is the wire form of a booking submission.
// Slot carries the requested start time as an RFC 3339 string.
type BookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Topic string `json:"topic,omitempty"`
	Slot  string `json:"slot"`
}

// BookedEvent describes the calendar event created for an accepted booking.
type BookedEvent struct {
	ID    string    `json:"id"`
	Link  string    `json:"link"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PublicConfig is the subset of configuration exposed to the booking page.
type PublicConfig struct {
	OwnerName         string `json:"ownerName"`
	Timezone          string `json:"timezone"`
	SlotDuration      int    `json:"slotDuration"`
	WorkingHoursStart int    `json:"workingHoursStart"`
	WorkingHoursEnd   int    `json:"workingHoursEnd"`
	WorkingDays       []int  `json:"workingDays"`
	MaxDaysAhead      int    `json:"maxDaysAhead"`
}
