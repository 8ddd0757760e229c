//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/tests/common/builder"
	commandsmock "salon-scheduler/tests/mock/commands"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type availabilityMocks struct {
	schedules    *commandsmock.MockAvailabilityRepository
	appointments *queriesmock.MockBookedAppointmentSource
	staff        *queriesmock.MockStaffDirectory
}

func newAvailabilityQueries(t *testing.T) (queries.AvailabilityQueries, availabilityMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := availabilityMocks{
		schedules:    commandsmock.NewMockAvailabilityRepository(ctrl),
		appointments: queriesmock.NewMockBookedAppointmentSource(ctrl),
		staff:        queriesmock.NewMockStaffDirectory(ctrl),
	}
	return queries.NewAvailabilityQueries(m.schedules, m.appointments, m.staff), m
}

func mustTOD(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func mustWin(t *testing.T, start, end string) schedule.Window {
	t.Helper()
	w, err := schedule.NewWindow(mustTOD(t, start), mustTOD(t, end))
	require.NoError(t, err)
	return w
}

func morningShift(t *testing.T, staffID uuid.UUID, date time.Time) *schedule.DayAvailability {
	t.Helper()
	day, err := schedule.NewDayAvailability(staffID, date, false, mustWin(t, "09:00", "12:00"), nil, 60, 1)
	require.NoError(t, err)
	return day
}

func TestGetAvailableSlots(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("booked slot is dropped from the grid", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		booked, err := builder.NewAppointmentBuilder().
			WithStaffID(staffID).
			WithStartTime("10:00").
			BuildDomain()
		require.NoError(t, err)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(true, nil)
		m.schedules.EXPECT().FindDay(gomock.Any(), staffID, date).Return(morningShift(t, staffID, date), nil)
		m.appointments.EXPECT().FindByStaffDate(gomock.Any(), staffID, date).
			Return([]*appointment.Appointment{booked}, nil)

		slots, err := q.GetAvailableSlots(context.Background(), staffID, date, 60)
		require.NoError(t, err)

		require.Len(t, slots, 2)
		assert.Equal(t, queries.TimeSlotView{Time: "09:00", Available: true}, slots[0])
		assert.Equal(t, queries.TimeSlotView{Time: "11:00", Available: true}, slots[1])
	})

	t.Run("missing schedule falls back to the default window", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(true, nil)
		m.schedules.EXPECT().FindDay(gomock.Any(), staffID, date).
			Return(nil, infra.WrapRepoErr("day schedule not found", nil, infra.KindNotFound))
		m.appointments.EXPECT().FindByStaffDate(gomock.Any(), staffID, date).Return(nil, nil)

		slots, err := q.GetAvailableSlots(context.Background(), staffID, date, 60)
		require.NoError(t, err)

		// Default window is 09:00-18:00 on a 60-minute grid.
		require.Len(t, slots, 9)
		assert.Equal(t, "09:00", slots[0].Time)
		assert.Equal(t, "17:00", slots[8].Time)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("non-positive duration is rejected up front", func(t *testing.T) {
		q, _ := newAvailabilityQueries(t)

		_, err := q.GetAvailableSlots(context.Background(), staffID, date, 0)
		assert.ErrorIs(t, err, queries.ErrInvalidDuration)
	})

	t.Run("unknown staff", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(false, nil)

		_, err := q.GetAvailableSlots(context.Background(), staffID, date, 60)
		assert.ErrorIs(t, err, queries.ErrStaffNotFound)
	})

	t.Run("schedule lookup failure is surfaced", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(true, nil)
		m.schedules.EXPECT().FindDay(gomock.Any(), staffID, date).
			Return(nil, infra.WrapRepoErr("query failed", assert.AnError))

		_, err := q.GetAvailableSlots(context.Background(), staffID, date, 60)
		assert.ErrorIs(t, err, queries.ErrScheduleLookupFail)
	})
}

func TestGetDaySchedule(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("explicit record", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		day, err := schedule.NewDayAvailability(
			staffID, date, false,
			mustWin(t, "10:00", "19:00"),
			[]schedule.Window{mustWin(t, "13:00", "14:00")},
			30, 2,
		)
		require.NoError(t, err)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(true, nil)
		m.schedules.EXPECT().FindDay(gomock.Any(), staffID, date).Return(day, nil)

		view, err := q.GetDaySchedule(context.Background(), staffID, date)
		require.NoError(t, err)

		assert.Equal(t, staffID, view.StaffID)
		assert.Equal(t, "10:00", view.WorkStart)
		assert.Equal(t, "19:00", view.WorkEnd)
		require.Len(t, view.Breaks, 1)
		assert.Equal(t, queries.BreakView{Start: "13:00", End: "14:00"}, view.Breaks[0])
		assert.Equal(t, 30, view.SlotDuration)
		assert.Equal(t, 2, view.MaxBookings)
		assert.False(t, view.IsDefault)
	})

	t.Run("fallback record is flagged as default", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(true, nil)
		m.schedules.EXPECT().FindDay(gomock.Any(), staffID, date).
			Return(nil, infra.WrapRepoErr("day schedule not found", nil, infra.KindNotFound))

		view, err := q.GetDaySchedule(context.Background(), staffID, date)
		require.NoError(t, err)

		assert.True(t, view.IsDefault)
		assert.Equal(t, "09:00", view.WorkStart)
		assert.Equal(t, "18:00", view.WorkEnd)
		assert.False(t, view.IsDayOff)
	})

	t.Run("unknown staff", func(t *testing.T) {
		q, m := newAvailabilityQueries(t)

		m.staff.EXPECT().Exists(gomock.Any(), staffID).Return(false, nil)

		_, err := q.GetDaySchedule(context.Background(), staffID, date)
		assert.ErrorIs(t, err, queries.ErrStaffNotFound)
	})
}
