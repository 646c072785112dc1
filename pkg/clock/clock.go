// Package clock provides the single source of truth for "now" in the
// venue's civil timezone. Every past-slot decision in the availability and
// booking paths goes through a Clock so the server never disagrees with
// itself about what has already elapsed.
package clock

import "time"

// The target region runs on a fixed UTC+5 offset year-round; no DST.
const (
	ZoneName    = "PKT"
	offsetHours = 5
)

const DateLayout = "2006-01-02"

type Clock interface {
	// Now returns the current instant in the venue timezone.
	Now() time.Time
	// Today returns the current calendar date as YYYY-MM-DD.
	Today() string
	// MinuteOfDay returns minutes elapsed since midnight, venue time.
	MinuteOfDay() int
}

type civilClock struct {
	loc *time.Location
}

// New returns a Clock pinned to the venue timezone, independent of the host
// machine's local timezone.
func New() Clock {
	return &civilClock{loc: time.FixedZone(ZoneName, offsetHours*60*60)}
}

func (c *civilClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *civilClock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *civilClock) MinuteOfDay() int {
	now := c.Now()
	return now.Hour()*60 + now.Minute()
}

// Fixed is a Clock frozen at a given instant, for tests.
type Fixed struct {
	Instant time.Time
}

func NewFixed(instant time.Time) *Fixed {
	return &Fixed{Instant: instant.In(time.FixedZone(ZoneName, offsetHours*60*60))}
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Today() string {
	return f.Instant.Format(DateLayout)
}

func (f *Fixed) MinuteOfDay() int {
	return f.Instant.Hour()*60 + f.Instant.Minute()
}
