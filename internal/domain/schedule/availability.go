package schedule

import (
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow      = errs.New("working hours start must be before end")
	ErrBreakOutsideWindow = errs.New("break must lie inside working hours")
	ErrBreaksOverlap      = errs.New("breaks must not overlap")
	ErrSlotDurationTooLow = errs.New("slot duration must be at least 15 minutes")
	ErrInvalidMaxBookings = errs.New("max bookings must be at least 1")
)

const (
	MinSlotDuration     = 15
	DefaultSlotDuration = 60
	DefaultMaxBookings  = 1
)

// Window is a half-open [start,end) wall-clock interval.
type Window struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewWindow(start, end TimeOfDay) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() TimeOfDay { return w.start }
func (w Window) End() TimeOfDay   { return w.end }

func (w Window) Contains(other Window) bool {
	return w.start.Minutes() <= other.start.Minutes() && other.end.Minutes() <= w.end.Minutes()
}

// DefaultWindow is the fallback working window applied when no
// availability record exists for a staff/date. The fallback lives here
// so every caller resolves the same policy.
func DefaultWindow() Window {
	start, _ := NewTimeOfDay(9, 0)
	end, _ := NewTimeOfDay(18, 0)
	return Window{start: start, end: end}
}

// DayAvailability is the authoritative working-hours record for one
// staff member on one calendar date.
type DayAvailability struct {
	staffID      uuid.UUID
	date         time.Time // calendar day, zero clock, UTC
	isDayOff     bool
	workingHours Window
	breaks       []Window
	slotDuration int
	maxBookings  int
}

func NewDayAvailability(
	staffID uuid.UUID,
	date time.Time,
	isDayOff bool,
	workingHours Window,
	breaks []Window,
	slotDuration int,
	maxBookings int,
) (*DayAvailability, error) {
	if slotDuration == 0 {
		slotDuration = DefaultSlotDuration
	}
	if slotDuration < MinSlotDuration {
		return nil, ErrSlotDurationTooLow
	}
	if maxBookings == 0 {
		maxBookings = DefaultMaxBookings
	}
	if maxBookings < 1 {
		return nil, ErrInvalidMaxBookings
	}

	for i, b := range breaks {
		if !workingHours.Contains(b) {
			return nil, ErrBreakOutsideWindow
		}
		if i > 0 && Overlaps(breaks[i-1].start.Minutes(), breaks[i-1].end.Minutes(), b.start.Minutes(), b.end.Minutes()) {
			return nil, ErrBreaksOverlap
		}
	}

	return &DayAvailability{
		staffID:      staffID,
		date:         TruncateDate(date),
		isDayOff:     isDayOff,
		workingHours: workingHours,
		breaks:       breaks,
		slotDuration: slotDuration,
		maxBookings:  maxBookings,
	}, nil
}

// DefaultDayAvailability builds the fallback record used when no
// explicit schedule exists for the date.
func DefaultDayAvailability(staffID uuid.UUID, date time.Time) *DayAvailability {
	return &DayAvailability{
		staffID:      staffID,
		date:         TruncateDate(date),
		workingHours: DefaultWindow(),
		slotDuration: DefaultSlotDuration,
		maxBookings:  DefaultMaxBookings,
	}
}

func (d *DayAvailability) StaffID() uuid.UUID   { return d.staffID }
func (d *DayAvailability) Date() time.Time      { return d.date }
func (d *DayAvailability) IsDayOff() bool       { return d.isDayOff }
func (d *DayAvailability) WorkingHours() Window { return d.workingHours }
func (d *DayAvailability) Breaks() []Window     { return d.breaks }
func (d *DayAvailability) SlotDuration() int    { return d.slotDuration }
func (d *DayAvailability) MaxBookings() int     { return d.maxBookings }

// TruncateDate drops the time component, keeping the calendar day in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
