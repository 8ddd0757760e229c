package schedule

import (
	"fmt"

	"salon-scheduler/internal/pkg/errs"
)

var (
	ErrInvalidTimeFormat = errs.New("invalid time format")
	ErrTimeOutOfRange    = errs.New("time out of range")
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time within a single day, minute precision.
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrTimeOutOfRange
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock). All four positions
// must be ASCII digits; anything looser is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, errs.Mark(fmt.Errorf("parse %q", s), ErrInvalidTimeFormat)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, errs.Mark(fmt.Errorf("parse %q", s), ErrInvalidTimeFormat)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		return TimeOfDay{}, errs.Mark(fmt.Errorf("parse %q", s), ErrInvalidTimeFormat)
	}
	return t, nil
}

// FromMinutes converts minutes since midnight back to a TimeOfDay.
func FromMinutes(m int) (TimeOfDay, error) {
	if m < 0 || m >= minutesPerDay {
		return TimeOfDay{}, ErrTimeOutOfRange
	}
	return TimeOfDay{hour: m / 60, minute: m % 60}, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.hour*60 + t.minute
}

// AddMinutes returns the time m minutes later. Wrapping past 23:59 is
// not allowed; appointments never cross midnight.
func (t TimeOfDay) AddMinutes(m int) (TimeOfDay, error) {
	return FromMinutes(t.Minutes() + m)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) overlap, in minutes since midnight. A booking ending
// exactly when another begins is not a conflict; every overlap decision
// in the engine routes through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
