package response

import (
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailableSlotsResponse struct {
	StaffID     uuid.UUID          `json:"staffId"`
	Date        string             `json:"date"`
	DurationMin int                `json:"durationMin"`
	Slots       []TimeSlotResponse `json:"slots"`
}

type DayScheduleResponse struct {
	StaffID      uuid.UUID       `json:"staffId"`
	Date         string          `json:"date"`
	IsDayOff     bool            `json:"isDayOff"`
	WorkStart    string          `json:"workStart"`
	WorkEnd      string          `json:"workEnd"`
	Breaks       []BreakResponse `json:"breaks,omitempty"`
	SlotDuration int             `json:"slotDurationMin"`
	MaxBookings  int             `json:"maxBookings"`
	IsDefault    bool            `json:"isDefault"`
}

type BreakResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromTimeSlotViews(staffID uuid.UUID, date string, durationMin int, slots []queries.TimeSlotView) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		StaffID:     staffID,
		Date:        date,
		DurationMin: durationMin,
		Slots:       make([]TimeSlotResponse, len(slots)),
	}
	for i, s := range slots {
		resp.Slots[i] = TimeSlotResponse{Time: s.Time, Available: s.Available}
	}
	return resp
}

func FromDayScheduleView(view *queries.DayScheduleView) *DayScheduleResponse {
	resp := &DayScheduleResponse{
		StaffID:      view.StaffID,
		Date:         view.Date.Format(dateLayout),
		IsDayOff:     view.IsDayOff,
		WorkStart:    view.WorkStart,
		WorkEnd:      view.WorkEnd,
		SlotDuration: view.SlotDuration,
		MaxBookings:  view.MaxBookings,
		IsDefault:    view.IsDefault,
	}
	for _, b := range view.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{Start: b.Start, End: b.End})
	}
	return resp
}
