package models

import "time"

// CalendarDay returns the date t falls on in its own location, as midnight UTC.
// Posting and scrape dates are compared on this calendar.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
