package models

import "time"

// DateLayout is the wire and form format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t with the clock zeroed, in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DatePtr returns a pointer to the calendar day of t.
func DatePtr(t time.Time) *time.Time {
	day := DateOf(t)
	return &day
}
