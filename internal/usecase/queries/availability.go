package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStaffNotFound      = errs.New("staff not found")
	ErrInvalidDuration    = errs.New("duration must be positive")
	ErrScheduleLookupFail = errs.New("schedule lookup failed")
)

// BookedAppointmentSource supplies the committed appointments for a
// staff/date partition. Never cached: bookings mutate the slot set.
type BookedAppointmentSource interface {
	FindByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*appointment.Appointment, error)
}

type StaffDirectory interface {
	Exists(ctx context.Context, staffID uuid.UUID) (bool, error)
}

type AvailabilityQueries interface {
	GetAvailableSlots(ctx context.Context, staffID uuid.UUID, date time.Time, durationMin int) ([]TimeSlotView, error)
	GetDaySchedule(ctx context.Context, staffID uuid.UUID, date time.Time) (*DayScheduleView, error)
}

type availabilityQueriesImpl struct {
	schedules    shared.DayScheduleSource
	appointments BookedAppointmentSource
	staff        StaffDirectory
}

func NewAvailabilityQueries(
	schedules shared.DayScheduleSource,
	appointments BookedAppointmentSource,
	staff StaffDirectory,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		schedules:    schedules,
		appointments: appointments,
		staff:        staff,
	}
}

func (q *availabilityQueriesImpl) GetAvailableSlots(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
	durationMin int,
) ([]TimeSlotView, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	record, _, err := q.resolveDay(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	appts, err := q.appointments.FindByStaffDate(ctx, staffID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrScheduleLookupFail)
	}

	busy := appointment.BusyIntervals(appts, uuid.Nil)
	slots := record.GenerateSlots(durationMin, busy)

	views := make([]TimeSlotView, len(slots))
	for i, s := range slots {
		views[i] = TimeSlotView{Time: s.Time.String(), Available: s.Available}
	}
	return views, nil
}

func (q *availabilityQueriesImpl) GetDaySchedule(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
) (*DayScheduleView, error) {
	record, isDefault, err := q.resolveDay(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	return ToDayScheduleView(record, isDefault), nil
}

func (q *availabilityQueriesImpl) resolveDay(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
) (*schedule.DayAvailability, bool, error) {
	exists, err := q.staff.Exists(ctx, staffID)
	if err != nil {
		return nil, false, errs.Mark(err, ErrScheduleLookupFail)
	}
	if !exists {
		return nil, false, ErrStaffNotFound
	}

	record, isDefault, err := shared.ResolveDay(ctx, q.schedules, staffID, date)
	if err != nil {
		return nil, false, errs.Mark(err, ErrScheduleLookupFail)
	}
	return record, isDefault, nil
}

func ToDayScheduleView(record *schedule.DayAvailability, isDefault bool) *DayScheduleView {
	view := &DayScheduleView{
		StaffID:      record.StaffID(),
		Date:         record.Date(),
		IsDayOff:     record.IsDayOff(),
		WorkStart:    record.WorkingHours().Start().String(),
		WorkEnd:      record.WorkingHours().End().String(),
		SlotDuration: record.SlotDuration(),
		MaxBookings:  record.MaxBookings(),
		IsDefault:    isDefault,
	}
	for _, b := range record.Breaks() {
		view.Breaks = append(view.Breaks, BreakView{Start: b.Start().String(), End: b.End().String()})
	}
	return view
}
