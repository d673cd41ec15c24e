package scheduling

import (
	"fmt"
	"time"
)

const (
	ClockFormat = "15:04"
	DateFormat  = "2006-01-02"
)

// Interval is a half-open time range [Start, End) in minutes since midnight.
// Using a half-open range means back-to-back appointments never overlap.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

func (i Interval) Duration() int {
	return i.End - i.Start
}

// ParseClock converts an HH:MM wall-clock string to a minute-of-day in
// [0, 1440).
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate validates an operational date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatClock(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// ParseInterval builds an Interval from HH:MM start and end strings. It does
// not require start < end; ordering is a validation concern.
func ParseInterval(startTime, endTime string) (Interval, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
