package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock provides the current time. Schedule logic depends on this
// interface rather than time.Now() so tests can freeze the clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the actual system time. Use at application entry points.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. For tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// ReferenceTime is the evaluation instant the schedule logic compares
// against: weekday in the 1-7 Monday-first convention, minutes since
// midnight, and the calendar date for same-day checks.
type ReferenceTime struct {
	WeekdayID int
	Minutes   int
	Year      int
	Month     time.Month
	Day       int
}

// Source derives ReferenceTimes from a Clock in a configured location.
// The legacy backend stores schedules as region wall-clock times, so the
// location must match the region the restaurants operate in. The zero
// location falls back to UTC, which is what the mobile app has always
// assumed.
type Source struct {
	clock Clock
	loc   *time.Location
}

// NewSource creates a Source. A nil clock uses the system clock, a nil
// location uses UTC.
func NewSource(c Clock, loc *time.Location) Source {
	if c == nil {
		c = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return Source{clock: c, loc: loc}
}

// Now returns the current ReferenceTime in the source's location.
func (s Source) Now() ReferenceTime {
	t := s.clock.Now().In(s.loc)
	return ReferenceTime{
		WeekdayID: WeekdayID(t),
		Minutes:   t.Hour()*60 + t.Minute(),
		Year:      t.Year(),
		Month:     t.Month(),
		Day:       t.Day(),
	}
}

// WeekdayID converts Go's Sunday-first weekday into the backend's
// 1-7 Monday-first ids.
func WeekdayID(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseMinutes converts a 12-hour "H:MM AM/PM" wall-clock string into
// minutes since midnight. "12 AM" is midnight, "12 PM" is noon. Schedule
// rows with times that do not parse are dropped at ingestion, so callers
// past that boundary only ever see well-formed values.
func ParseMinutes(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected \"H:MM AM/PM\"", s)
	}

	marker := strings.ToUpper(fields[1])
	if marker != "AM" && marker != "PM" {
		return 0, fmt.Errorf("invalid time %q: bad AM/PM marker", s)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time %q: bad hour:minute part", s)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}

	if marker == "PM" && hour != 12 {
		hour += 12
	}
	if marker == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight as a 12-hour wall-clock
// string: no leading zero on the hour, two-digit minute ("9:05 AM").
func FormatMinutes(mins int) string {
	h24 := mins / 60
	m := mins % 60
	marker := "AM"
	if h24 >= 12 {
		marker = "PM"
	}
	h12 := h24 % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, marker)
}
