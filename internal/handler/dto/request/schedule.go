package request

import (
	"sort"
	"time"

	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

type BreakWindow struct {
	Start string `json:"start" binding:"required" example:"13:00"`
	End   string `json:"end" binding:"required" example:"14:00"`
}

type UpsertDayScheduleRequest struct {
	IsDayOff        bool          `json:"is_day_off"`
	WorkStart       string        `json:"work_start" example:"09:00"`
	WorkEnd         string        `json:"work_end" example:"18:00"`
	Breaks          []BreakWindow `json:"breaks"`
	SlotDurationMin int           `json:"slot_duration_min"`
	MaxBookings     int           `json:"max_bookings"`
}

// ToDomain builds the availability record. A day off keeps the default
// window so the record stays well formed; slot generation ignores it.
func (r UpsertDayScheduleRequest) ToDomain(staffID uuid.UUID, date time.Time) (*schedule.DayAvailability, error) {
	window := schedule.DefaultWindow()
	if r.WorkStart != "" || r.WorkEnd != "" {
		start, err := schedule.ParseTimeOfDay(r.WorkStart)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ParseTimeOfDay(r.WorkEnd)
		if err != nil {
			return nil, err
		}
		window, err = schedule.NewWindow(start, end)
		if err != nil {
			return nil, err
		}
	}

	breaks := make([]schedule.Window, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		start, err := schedule.ParseTimeOfDay(b.Start)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ParseTimeOfDay(b.End)
		if err != nil {
			return nil, err
		}
		w, err := schedule.NewWindow(start, end)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, w)
	}

	sort.Slice(breaks, func(i, j int) bool {
		return breaks[i].Start().Before(breaks[j].Start())
	})

	return schedule.NewDayAvailability(staffID, date, r.IsDayOff, window, breaks, r.SlotDurationMin, r.MaxBookings)
}
