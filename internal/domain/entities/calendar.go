package entities

import "time"

// DateLayout is the storage and display layout of calendar dates.
const DateLayout = "2006-01-02"

// Calendar turns instants into the bot's calendar dates.
//
// A calendar date is represented as midnight UTC carrying the year, month and
// day observed in the bot's timezone, so dates compare equal regardless of
// which backend stored them.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for the given timezone backed by time.Now.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of the calendar that reads the current instant from now.
func (c Calendar) WithClock(now func() time.Time) Calendar {
	c.now = now
	return c
}

// Location returns the calendar timezone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// Now returns the current instant in the calendar timezone.
func (c Calendar) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().In(c.Location())
}

// Today returns the current calendar date.
func (c Calendar) Today() time.Time {
	return c.DateOf(c.Now())
}

// DateOf returns the calendar date of t.
func (c Calendar) DateOf(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
