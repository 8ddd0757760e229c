package shared

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"

	"github.com/google/uuid"
)

// DayScheduleSource resolves the availability record for a staff/date.
// The read side layers the Redis cache in front of the pgx repository;
// the write side uses the repository directly. Both satisfy this.
type DayScheduleSource interface {
	FindDay(ctx context.Context, staffID uuid.UUID, date time.Time) (*schedule.DayAvailability, error)
}

// ResolveDay is the single place the default-window fallback applies:
// a staff member with no record for the date works the default
// 09:00-18:00 window. The second return reports whether the fallback
// was used.
func ResolveDay(ctx context.Context, src DayScheduleSource, staffID uuid.UUID, date time.Time) (*schedule.DayAvailability, bool, error) {
	record, err := src.FindDay(ctx, staffID, date)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return schedule.DefaultDayAvailability(staffID, date), true, nil
		}
		return nil, false, err
	}
	return record, false, nil
}
