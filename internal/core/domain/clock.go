package domain

import "time"

// Clock resolves "today" once per call site, in the user's timezone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today returns the local calendar day, pinned to UTC midnight.
func (c Clock) Today() time.Time {
	return LocalDay(c.now(), c.Location)
}

func (c Clock) Timestamp() time.Time {
	return c.now().UTC()
}
