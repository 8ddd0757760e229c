package appointment

import (
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoServices         = errs.New("appointment requires at least one service")
	ErrInvalidDuration    = errs.New("service duration must be positive")
	ErrInvalidTransition  = errs.New("invalid status transition")
	ErrTerminalStatus     = errs.New("appointment is in a terminal status")
	ErrCancelWindowPassed = errs.New("cancellation window has passed")
)

// ServiceLine is one booked service, already resolved from the catalog.
type ServiceLine struct {
	ServiceID   uuid.UUID
	DurationMin int
	PriceCents  int64
}

// RescheduleEntry records one move of the appointment. History is
// append-only; a reschedule never erases where the booking used to be.
type RescheduleEntry struct {
	OriginalDate time.Time
	OriginalTime schedule.TimeOfDay
	NewDate      time.Time
	NewTime      schedule.TimeOfDay
	Reason       string
	At           time.Time
}

type Appointment struct {
	id                uuid.UUID
	salonID           uuid.UUID
	customerID        uuid.UUID
	staffID           uuid.UUID
	date              time.Time
	startTime         schedule.TimeOfDay
	endTime           schedule.TimeOfDay
	services          []ServiceLine
	status            Status
	notes             string
	rescheduleHistory []RescheduleEntry
	cancelReason      string
	actualStartTime   *time.Time
	actualEndTime     *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewAppointment creates a scheduled appointment. The end time is
// derived from the start plus the summed service durations and must
// stay within the same day.
func NewAppointment(
	salonID, customerID, staffID uuid.UUID,
	date time.Time,
	startTime schedule.TimeOfDay,
	services []ServiceLine,
	notes string,
	now time.Time,
) (*Appointment, error) {
	if len(services) == 0 {
		return nil, ErrNoServices
	}
	total := 0
	for _, svc := range services {
		if svc.DurationMin <= 0 {
			return nil, ErrInvalidDuration
		}
		total += svc.DurationMin
	}
	endTime, err := startTime.AddMinutes(total)
	if err != nil {
		return nil, err
	}

	return &Appointment{
		id:         uuid.New(),
		salonID:    salonID,
		customerID: customerID,
		staffID:    staffID,
		date:       schedule.TruncateDate(date),
		startTime:  startTime,
		endTime:    endTime,
		services:   services,
		status:     StatusScheduled,
		notes:      notes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds an appointment from storage without validation.
func Reconstruct(
	id, salonID, customerID, staffID uuid.UUID,
	date time.Time,
	startTime, endTime schedule.TimeOfDay,
	services []ServiceLine,
	status Status,
	notes string,
	history []RescheduleEntry,
	cancelReason string,
	actualStart, actualEnd *time.Time,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:                id,
		salonID:           salonID,
		customerID:        customerID,
		staffID:           staffID,
		date:              date,
		startTime:         startTime,
		endTime:           endTime,
		services:          services,
		status:            status,
		notes:             notes,
		rescheduleHistory: history,
		cancelReason:      cancelReason,
		actualStartTime:   actualStart,
		actualEndTime:     actualEnd,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID                        { return a.id }
func (a *Appointment) SalonID() uuid.UUID                   { return a.salonID }
func (a *Appointment) CustomerID() uuid.UUID                { return a.customerID }
func (a *Appointment) StaffID() uuid.UUID                   { return a.staffID }
func (a *Appointment) Date() time.Time                      { return a.date }
func (a *Appointment) StartTime() schedule.TimeOfDay        { return a.startTime }
func (a *Appointment) EndTime() schedule.TimeOfDay          { return a.endTime }
func (a *Appointment) Services() []ServiceLine              { return a.services }
func (a *Appointment) Status() Status                       { return a.status }
func (a *Appointment) Notes() string                        { return a.notes }
func (a *Appointment) RescheduleHistory() []RescheduleEntry { return a.rescheduleHistory }
func (a *Appointment) CancelReason() string                 { return a.cancelReason }
func (a *Appointment) ActualStartTime() *time.Time          { return a.actualStartTime }
func (a *Appointment) ActualEndTime() *time.Time            { return a.actualEndTime }
func (a *Appointment) CreatedAt() time.Time                 { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time                 { return a.updatedAt }

// Interval returns the occupied [start,end) range in minutes.
func (a *Appointment) Interval() schedule.Interval {
	return schedule.Interval{Start: a.startTime.Minutes(), End: a.endTime.Minutes()}
}

// TotalDurationMin is the summed service duration.
func (a *Appointment) TotalDurationMin() int {
	total := 0
	for _, svc := range a.services {
		total += svc.DurationMin
	}
	return total
}

// TotalPriceCents is the summed service price.
func (a *Appointment) TotalPriceCents() int64 {
	var total int64
	for _, svc := range a.services {
		total += svc.PriceCents
	}
	return total
}

// StartAt combines the calendar date and start time into an instant.
func (a *Appointment) StartAt() time.Time {
	return a.date.Add(time.Duration(a.startTime.Minutes()) * time.Minute)
}

// CheckIn moves a scheduled or confirmed appointment to in-progress.
func (a *Appointment) CheckIn(now time.Time) error {
	if a.status != StatusScheduled && a.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	a.status = StatusInProgress
	a.actualStartTime = &now
	a.updatedAt = now
	return nil
}

// Confirm moves a scheduled appointment to confirmed.
func (a *Appointment) Confirm(now time.Time) error {
	if a.status != StatusScheduled {
		return ErrInvalidTransition
	}
	a.status = StatusConfirmed
	a.updatedAt = now
	return nil
}

// Complete finishes an in-progress appointment.
func (a *Appointment) Complete(now time.Time) error {
	if a.status != StatusInProgress {
		return ErrInvalidTransition
	}
	a.status = StatusCompleted
	a.actualEndTime = &now
	a.updatedAt = now
	return nil
}

// CanBeCancelled reports whether cancellation is still allowed:
// non-terminal status and more than cancelWindowMin minutes before the
// start. The window is tenant configuration, not a fixed rule.
func (a *Appointment) CanBeCancelled(now time.Time, cancelWindowMin int) bool {
	if a.status.IsTerminal() {
		return false
	}
	deadline := a.StartAt().Add(-time.Duration(cancelWindowMin) * time.Minute)
	return now.Before(deadline)
}

// Cancel cancels any non-terminal appointment, recording the reason.
func (a *Appointment) Cancel(reason string, now time.Time, cancelWindowMin int) error {
	if a.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !a.CanBeCancelled(now, cancelWindowMin) {
		return ErrCancelWindowPassed
	}
	a.status = StatusCancelled
	a.cancelReason = reason
	a.updatedAt = now
	return nil
}

// MarkNoShow records a no-show for any non-terminal appointment.
func (a *Appointment) MarkNoShow(now time.Time) error {
	if a.status.IsTerminal() {
		return ErrTerminalStatus
	}
	a.status = StatusNoShow
	a.updatedAt = now
	return nil
}

// Reschedule moves the appointment to a new date and start time,
// appending to the history and resetting the status to scheduled. The
// conflict check against the new slot is the caller's responsibility;
// the id never changes.
func (a *Appointment) Reschedule(newDate time.Time, newStart schedule.TimeOfDay, reason string, now time.Time) error {
	if a.status.IsTerminal() {
		return ErrTerminalStatus
	}
	newEnd, err := newStart.AddMinutes(a.TotalDurationMin())
	if err != nil {
		return err
	}

	a.rescheduleHistory = append(a.rescheduleHistory, RescheduleEntry{
		OriginalDate: a.date,
		OriginalTime: a.startTime,
		NewDate:      schedule.TruncateDate(newDate),
		NewTime:      newStart,
		Reason:       reason,
		At:           now,
	})
	a.date = schedule.TruncateDate(newDate)
	a.startTime = newStart
	a.endTime = newEnd
	a.status = StatusScheduled
	a.updatedAt = now
	return nil
}
