//go:build unit || e2e

package builder

import (
	"time"

	"salon-scheduler/internal/domain/schedule"
	reqdto "salon-scheduler/internal/handler/dto/request"

	"github.com/google/uuid"
)

type DayScheduleBuilder struct {
	StaffID         uuid.UUID
	Date            time.Time
	IsDayOff        bool
	WorkStart       string
	WorkEnd         string
	Breaks          []reqdto.BreakWindow
	SlotDurationMin int
	MaxBookings     int
}

func NewDayScheduleBuilder() *DayScheduleBuilder {
	return &DayScheduleBuilder{
		StaffID:         uuid.New(),
		Date:            time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		WorkStart:       "09:00",
		WorkEnd:         "18:00",
		SlotDurationMin: schedule.DefaultSlotDuration,
		MaxBookings:     schedule.DefaultMaxBookings,
	}
}

func (b *DayScheduleBuilder) BuildRequestDTO() reqdto.UpsertDayScheduleRequest {
	return reqdto.UpsertDayScheduleRequest{
		IsDayOff:        b.IsDayOff,
		WorkStart:       b.WorkStart,
		WorkEnd:         b.WorkEnd,
		Breaks:          b.Breaks,
		SlotDurationMin: b.SlotDurationMin,
		MaxBookings:     b.MaxBookings,
	}
}

func (b *DayScheduleBuilder) BuildDomain() (*schedule.DayAvailability, error) {
	return b.BuildRequestDTO().ToDomain(b.StaffID, b.Date)
}

// Fluent builder methods
func (b *DayScheduleBuilder) WithStaffID(id uuid.UUID) *DayScheduleBuilder {
	b.StaffID = id
	return b
}

func (b *DayScheduleBuilder) WithDate(date time.Time) *DayScheduleBuilder {
	b.Date = date
	return b
}

func (b *DayScheduleBuilder) AsDayOff() *DayScheduleBuilder {
	b.IsDayOff = true
	return b
}

func (b *DayScheduleBuilder) WithWindow(start, end string) *DayScheduleBuilder {
	b.WorkStart = start
	b.WorkEnd = end
	return b
}

func (b *DayScheduleBuilder) WithBreak(start, end string) *DayScheduleBuilder {
	b.Breaks = append(b.Breaks, reqdto.BreakWindow{Start: start, End: end})
	return b
}

func (b *DayScheduleBuilder) WithSlotDuration(minutes int) *DayScheduleBuilder {
	b.SlotDurationMin = minutes
	return b
}

func (b *DayScheduleBuilder) WithMaxBookings(n int) *DayScheduleBuilder {
	b.MaxBookings = n
	return b
}
