//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func mustWindow(t *testing.T, start, end string) schedule.Window {
	t.Helper()
	w, err := schedule.NewWindow(mustTime(t, start), mustTime(t, end))
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	_, err := schedule.NewWindow(mustTime(t, "18:00"), mustTime(t, "09:00"))
	assert.ErrorIs(t, err, schedule.ErrInvalidWindow)

	_, err = schedule.NewWindow(mustTime(t, "09:00"), mustTime(t, "09:00"))
	assert.ErrorIs(t, err, schedule.ErrInvalidWindow)
}

func TestNewDayAvailability(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	working := mustWindow(t, "09:00", "18:00")

	t.Run("valid record with breaks", func(t *testing.T) {
		breaks := []schedule.Window{mustWindow(t, "12:00", "13:00")}
		got, err := schedule.NewDayAvailability(staffID, date, false, working, breaks, 30, 2)
		require.NoError(t, err)
		assert.Equal(t, staffID, got.StaffID())
		assert.Equal(t, 30, got.SlotDuration())
		assert.Equal(t, 2, got.MaxBookings())
		assert.False(t, got.IsDayOff())
	})

	t.Run("zero slot duration and capacity fall back to defaults", func(t *testing.T) {
		got, err := schedule.NewDayAvailability(staffID, date, false, working, nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, schedule.DefaultSlotDuration, got.SlotDuration())
		assert.Equal(t, schedule.DefaultMaxBookings, got.MaxBookings())
	})

	t.Run("slot duration below minimum", func(t *testing.T) {
		_, err := schedule.NewDayAvailability(staffID, date, false, working, nil, 10, 1)
		assert.ErrorIs(t, err, schedule.ErrSlotDurationTooLow)
	})

	t.Run("negative max bookings", func(t *testing.T) {
		_, err := schedule.NewDayAvailability(staffID, date, false, working, nil, 30, -1)
		assert.ErrorIs(t, err, schedule.ErrInvalidMaxBookings)
	})

	t.Run("break outside working hours", func(t *testing.T) {
		breaks := []schedule.Window{mustWindow(t, "08:00", "10:00")}
		_, err := schedule.NewDayAvailability(staffID, date, false, working, breaks, 30, 1)
		assert.ErrorIs(t, err, schedule.ErrBreakOutsideWindow)
	})

	t.Run("overlapping breaks", func(t *testing.T) {
		breaks := []schedule.Window{
			mustWindow(t, "12:00", "13:00"),
			mustWindow(t, "12:30", "14:00"),
		}
		_, err := schedule.NewDayAvailability(staffID, date, false, working, breaks, 30, 1)
		assert.ErrorIs(t, err, schedule.ErrBreaksOverlap)
	})

	t.Run("date is truncated to the calendar day", func(t *testing.T) {
		noon := time.Date(2025, 7, 14, 12, 34, 56, 0, time.UTC)
		got, err := schedule.NewDayAvailability(staffID, noon, false, working, nil, 30, 1)
		require.NoError(t, err)
		assert.Equal(t, date, got.Date())
	})
}

func TestDefaultDayAvailability(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	got := schedule.DefaultDayAvailability(staffID, date)

	assert.False(t, got.IsDayOff())
	assert.Equal(t, "09:00", got.WorkingHours().Start().String())
	assert.Equal(t, "18:00", got.WorkingHours().End().String())
	assert.Empty(t, got.Breaks())
	assert.Equal(t, schedule.DefaultSlotDuration, got.SlotDuration())
	assert.Equal(t, schedule.DefaultMaxBookings, got.MaxBookings())
}
