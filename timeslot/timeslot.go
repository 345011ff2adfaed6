// timeslot/timeslot.go
package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The booking grid is fixed at 30-minute units. A service without an explicit
// duration occupies a single unit.
const (
	GranularityMinutes     = 30
	DefaultDurationMinutes = 30

	// MinutesPerDay is the exclusive upper bound for a slot start. "24:00" is a
	// valid end-of-range marker but never a start time.
	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")
	ErrPastMidnight = errors.New("time range extends past midnight")
	ErrOffGrid      = errors.New("time is not on a 30-minute boundary")
	clockPattern    = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

// Clock is a zero-padded 24-hour "HH:MM" time-of-day label. Because the form is
// canonical, lexical ordering of Clock values is chronological ordering, which
// lets them be compared and range-queried as plain strings in the database.
type Clock string

// Parse validates s and returns its canonical form ("9:30" becomes "09:30").
func Parse(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return FromMinutes(hour*60 + min), nil
}

// FromMinutes converts minutes-since-midnight to a Clock. 1440 maps to "24:00",
// the exclusive end-of-day bound.
func FromMinutes(m int) Clock {
	return Clock(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Minutes returns minutes since midnight. Only call on validated Clocks.
func (c Clock) Minutes() int {
	hour, _ := strconv.Atoi(string(c[:2]))
	min, _ := strconv.Atoi(string(c[3:]))
	return hour*60 + min
}

func (c Clock) Before(other Clock) bool { return c < other }

func (c Clock) String() string { return string(c) }

// OnGrid reports whether c falls on a grid boundary (:00 or :30). Declared
// availability must be on-grid; booking start times may be off-grid and are
// settled by the overlap check instead.
func (c Clock) OnGrid() bool { return c.Minutes()%GranularityMinutes == 0 }

// AddMinutes returns c shifted forward. Results up to "24:00" inclusive are
// allowed so the value can serve as an exclusive range end; anything beyond
// fails because slots are scoped to a single calendar day.
func AddMinutes(c Clock, minutes int) (Clock, error) {
	total := c.Minutes() + minutes
	if total > MinutesPerDay {
		return "", ErrPastMidnight
	}
	return FromMinutes(total), nil
}

// EffectiveDuration applies the default-duration policy: a missing or
// non-positive service duration books a single grid unit.
func EffectiveDuration(durationMinutes int) int {
	if durationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return durationMinutes
}

// RequiredSlots is the number of consecutive grid units a service occupies,
// rounded up. A 45-minute service on the 30-minute grid takes 2 slots and so
// consumes a full hour of declared availability.
func RequiredSlots(durationMinutes int) int {
	d := EffectiveDuration(durationMinutes)
	return (d + GranularityMinutes - 1) / GranularityMinutes
}

// SlotsCovering returns every grid-aligned slot whose 30-minute unit
// intersects the half-open window starting at start and lasting durationMin
// minutes. An off-grid start consumes the unit it begins in: a 30-minute
// window from "10:15" covers both "10:00" and "10:30".
func SlotsCovering(start Clock, durationMin int) []Clock {
	startMin := start.Minutes()
	endMin := startMin + EffectiveDuration(durationMin)
	if endMin > MinutesPerDay {
		endMin = MinutesPerDay
	}
	first := (startMin / GranularityMinutes) * GranularityMinutes

	slots := make([]Clock, 0, (endMin-first+GranularityMinutes-1)/GranularityMinutes)
	for m := first; m < endMin; m += GranularityMinutes {
		slots = append(slots, FromMinutes(m))
	}
	return slots
}

// Within reports whether t lies in the half-open window [start, end).
func Within(t, start, end Clock) bool {
	return !t.Before(start) && t.Before(end)
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
