// Package availability turns the owner's busy intervals and the weekly
// working-hours template into a concrete list of bookable slots. Everything
// here is a pure function of its inputs; the engine holds no state and is
// safe to call from concurrent requests.
package availability

import (
	"time"

	"bookable/config"
	"bookable/models"
)

// ComputeSlots enumerates available slots between windowStart and windowEnd,
// ascending by start time.
//
// Days are iterated in the configured time zone, from windowStart truncated
// to local midnight up to but excluding windowEnd. Within a working day,
// candidate starts run from WORKING_HOURS_START in slot-duration steps that
// re-anchor at the top of each hour; the end hour bounds slot start times,
// not slot end times. Candidates inside the minimum-notice window relative
// to now, or overlapping any buffer-expanded busy interval, are dropped.
//
// Enforcing the window's upper bound (MAX_DAYS_AHEAD) is the caller's job.
func ComputeSlots(cfg *config.Config, busy []models.Interval, windowStart, windowEnd, now time.Time) []models.AvailableSlot {
	loc := cfg.Location()
	minStart := now.Add(cfg.MinNotice())
	duration := cfg.SlotDuration()

	var slots []models.AvailableSlot

	local := windowStart.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	for ; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		if !cfg.IsWorkingDay(Weekday(day)) {
			continue
		}
		// A template with startHour >= endHour yields zero slots; valid, not an error.
		for hour := cfg.WorkingHoursStart; hour < cfg.WorkingHoursEnd; hour++ {
			for minute := 0; minute < 60; minute += cfg.SlotDurationMinutes {
				start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
				end := start.Add(duration)

				if start.Before(minStart) {
					continue
				}
				if Conflicts(cfg, busy, start, end) {
					continue
				}
				slots = append(slots, models.AvailableSlot{Start: start, End: end})
			}
		}
	}
	return slots
}

// Conflicts reports whether the candidate [start, end) overlaps any busy
// interval after expanding it by the configured buffers. The overlap test is
// half-open: a buffered busy end equal to the candidate start is not a
// conflict.
func Conflicts(cfg *config.Config, busy []models.Interval, start, end time.Time) bool {
	for _, b := range busy {
		exStart := b.Start.Add(-cfg.BufferBefore())
		exEnd := b.End.Add(cfg.BufferAfter())
		if start.Before(exEnd) && end.After(exStart) {
			return true
		}
	}
	return false
}

// MeetsNotice reports whether a slot starting at start leaves at least the
// configured lead time relative to now.
func MeetsNotice(cfg *config.Config, start, now time.Time) bool {
	return !start.Before(now.Add(cfg.MinNotice()))
}

// OnGrid reports whether start is a candidate the template could ever offer:
// a working day, within working hours, and aligned to the slot grid. Booking
// requests for instants outside the grid were never listed and are rejected
// before any provider call.
func OnGrid(cfg *config.Config, start time.Time) bool {
	local := start.In(cfg.Location())
	if !cfg.IsWorkingDay(Weekday(local)) {
		return false
	}
	if local.Hour() < cfg.WorkingHoursStart || local.Hour() >= cfg.WorkingHoursEnd {
		return false
	}
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	return local.Minute()%cfg.SlotDurationMinutes == 0
}
