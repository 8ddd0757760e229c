//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func newTestAppointment(t *testing.T, start string, durations ...int) *appointment.Appointment {
	t.Helper()
	if len(durations) == 0 {
		durations = []int{60}
	}
	lines := make([]appointment.ServiceLine, len(durations))
	for i, d := range durations {
		lines[i] = appointment.ServiceLine{ServiceID: uuid.New(), DurationMin: d, PriceCents: 1000}
	}
	appt, err := appointment.NewAppointment(
		uuid.New(), uuid.New(), uuid.New(),
		testDate, mustTime(t, start), lines, "", testDate.Add(-24*time.Hour),
	)
	require.NoError(t, err)
	return appt
}

func TestNewAppointment(t *testing.T) {
	t.Run("end time is derived from the summed durations", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00", 60, 30)

		assert.Equal(t, "10:00", appt.StartTime().String())
		assert.Equal(t, "11:30", appt.EndTime().String())
		assert.Equal(t, 90, appt.TotalDurationMin())
		assert.Equal(t, int64(2000), appt.TotalPriceCents())
		assert.Equal(t, appointment.StatusScheduled, appt.Status())
	})

	t.Run("requires at least one service", func(t *testing.T) {
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			testDate, mustTime(t, "10:00"), nil, "", time.Now(),
		)
		assert.ErrorIs(t, err, appointment.ErrNoServices)
	})

	t.Run("rejects non-positive service duration", func(t *testing.T) {
		lines := []appointment.ServiceLine{{ServiceID: uuid.New(), DurationMin: 0}}
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			testDate, mustTime(t, "10:00"), lines, "", time.Now(),
		)
		assert.ErrorIs(t, err, appointment.ErrInvalidDuration)
	})

	t.Run("rejects bookings that would cross midnight", func(t *testing.T) {
		lines := []appointment.ServiceLine{{ServiceID: uuid.New(), DurationMin: 90}}
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			testDate, mustTime(t, "23:00"), lines, "", time.Now(),
		)
		assert.ErrorIs(t, err, schedule.ErrTimeOutOfRange)
	})
}

func TestStatusTransitions(t *testing.T) {
	now := testDate.Add(9 * time.Hour)

	t.Run("scheduled -> confirmed -> in-progress -> completed", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")

		require.NoError(t, appt.Confirm(now))
		assert.Equal(t, appointment.StatusConfirmed, appt.Status())

		require.NoError(t, appt.CheckIn(now))
		assert.Equal(t, appointment.StatusInProgress, appt.Status())
		require.NotNil(t, appt.ActualStartTime())

		require.NoError(t, appt.Complete(now))
		assert.Equal(t, appointment.StatusCompleted, appt.Status())
		require.NotNil(t, appt.ActualEndTime())
	})

	t.Run("check-in straight from scheduled", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		require.NoError(t, appt.CheckIn(now))
		assert.Equal(t, appointment.StatusInProgress, appt.Status())
	})

	t.Run("confirm requires scheduled", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		require.NoError(t, appt.CheckIn(now))
		assert.ErrorIs(t, appt.Confirm(now), appointment.ErrInvalidTransition)
	})

	t.Run("complete requires in-progress", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		assert.ErrorIs(t, appt.Complete(now), appointment.ErrInvalidTransition)
	})

	t.Run("no-show from any active status", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		require.NoError(t, appt.Confirm(now))
		require.NoError(t, appt.MarkNoShow(now))
		assert.Equal(t, appointment.StatusNoShow, appt.Status())
	})

	t.Run("terminal statuses accept nothing", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		require.NoError(t, appt.MarkNoShow(now))

		assert.ErrorIs(t, appt.MarkNoShow(now), appointment.ErrTerminalStatus)
		assert.ErrorIs(t, appt.Cancel("", now, 0), appointment.ErrTerminalStatus)
		assert.ErrorIs(t, appt.Reschedule(testDate, mustTime(t, "11:00"), "", now), appointment.ErrTerminalStatus)
	})
}

func TestCancel(t *testing.T) {
	const cancelWindowMin = 120

	t.Run("well before the window", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		now := testDate.Add(7 * time.Hour) // 07:00, three hours ahead

		require.NoError(t, appt.Cancel("sick", now, cancelWindowMin))
		assert.Equal(t, appointment.StatusCancelled, appt.Status())
		assert.Equal(t, "sick", appt.CancelReason())
	})

	t.Run("inside the window", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		now := testDate.Add(9 * time.Hour) // 09:00, one hour ahead

		assert.ErrorIs(t, appt.Cancel("late", now, cancelWindowMin), appointment.ErrCancelWindowPassed)
		assert.Equal(t, appointment.StatusScheduled, appt.Status())
	})

	t.Run("exactly on the deadline is too late", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		now := testDate.Add(8 * time.Hour) // 08:00, exactly two hours ahead

		assert.ErrorIs(t, appt.Cancel("", now, cancelWindowMin), appointment.ErrCancelWindowPassed)
	})
}

func TestReschedule(t *testing.T) {
	now := testDate.Add(8 * time.Hour)

	t.Run("moves the slot and appends history", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00", 60)
		require.NoError(t, appt.Confirm(now))

		newDate := testDate.AddDate(0, 0, 1)
		require.NoError(t, appt.Reschedule(newDate, mustTime(t, "14:00"), "customer request", now))

		assert.Equal(t, newDate, appt.Date())
		assert.Equal(t, "14:00", appt.StartTime().String())
		assert.Equal(t, "15:00", appt.EndTime().String())
		// Reschedule resets confirmation.
		assert.Equal(t, appointment.StatusScheduled, appt.Status())

		require.Len(t, appt.RescheduleHistory(), 1)
		entry := appt.RescheduleHistory()[0]
		assert.Equal(t, testDate, entry.OriginalDate)
		assert.Equal(t, "10:00", entry.OriginalTime.String())
		assert.Equal(t, newDate, entry.NewDate)
		assert.Equal(t, "14:00", entry.NewTime.String())
		assert.Equal(t, "customer request", entry.Reason)
	})

	t.Run("history accumulates across moves", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00")
		require.NoError(t, appt.Reschedule(testDate, mustTime(t, "11:00"), "", now))
		require.NoError(t, appt.Reschedule(testDate, mustTime(t, "12:00"), "", now))

		require.Len(t, appt.RescheduleHistory(), 2)
		assert.Equal(t, "11:00", appt.RescheduleHistory()[1].OriginalTime.String())
	})

	t.Run("rejects a start that pushes past midnight", func(t *testing.T) {
		appt := newTestAppointment(t, "10:00", 90)
		err := appt.Reschedule(testDate, mustTime(t, "23:00"), "", now)
		assert.ErrorIs(t, err, schedule.ErrTimeOutOfRange)
		// Entity untouched on failure.
		assert.Equal(t, "10:00", appt.StartTime().String())
		assert.Empty(t, appt.RescheduleHistory())
	})
}
