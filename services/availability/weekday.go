package availability

import "time"

// Weekday maps t's day of week to the schedule template numbering,
// 1=Monday .. 7=Sunday. Go's time package numbers Sunday as 0.
func Weekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}
