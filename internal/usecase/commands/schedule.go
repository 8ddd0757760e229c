package commands

import (
	"context"
	"log/slog"
	"time"

	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidScheduleInput = errs.New("invalid schedule input")

type ScheduleCommands interface {
	UpsertDay(ctx context.Context, staffID uuid.UUID, date time.Time, req reqdto.UpsertDayScheduleRequest) (*queries.DayScheduleView, error)
}

type scheduleCommandsImpl struct {
	availabilityRepo AvailabilityRepository
	staffRepo        StaffRepository
	cache            ScheduleCacheInvalidator
}

func NewScheduleCommands(
	availabilityRepo AvailabilityRepository,
	staffRepo StaffRepository,
	cache ScheduleCacheInvalidator,
) ScheduleCommands {
	return &scheduleCommandsImpl{
		availabilityRepo: availabilityRepo,
		staffRepo:        staffRepo,
		cache:            cache,
	}
}

func (s *scheduleCommandsImpl) UpsertDay(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
	req reqdto.UpsertDayScheduleRequest,
) (*queries.DayScheduleView, error) {
	if _, err := s.staffRepo.FindByID(ctx, staffID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	record, err := req.ToDomain(staffID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidScheduleInput)
	}

	if err = s.availabilityRepo.Upsert(ctx, record); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Stale cached records would keep serving the old window until TTL
	if err = s.cache.Invalidate(ctx, staffID, date); err != nil {
		slog.Warn("failed to invalidate schedule cache",
			"staff_id", staffID,
			"date", date.Format("2006-01-02"),
			"error", err.Error())
	}

	return queries.ToDayScheduleView(record, false), nil
}
