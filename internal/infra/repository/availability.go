package repository

import (
	"context"
	"encoding/json"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// breakRow is the JSONB shape of one break window.
type breakRow struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

func (r *AvailabilityRepository) FindDay(ctx context.Context, staffID uuid.UUID, date time.Time) (*schedule.DayAvailability, error) {
	query := `
		SELECT is_day_off, work_start_min, work_end_min, breaks, slot_duration_min, max_bookings
		FROM staff_schedules
		WHERE staff_id = $1 AND date = $2
	`

	var (
		isDayOff                 bool
		workStartMin, workEndMin int
		breaksJSON               []byte
		slotDuration             int
		maxBookings              int
	)
	err := r.pool.QueryRow(ctx, query, staffID, schedule.TruncateDate(date)).Scan(
		&isDayOff, &workStartMin, &workEndMin, &breaksJSON, &slotDuration, &maxBookings,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule", err)
	}

	record, err := toDayAvailability(staffID, date, isDayOff, workStartMin, workEndMin, breaksJSON, slotDuration, maxBookings)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild schedule record", err)
	}
	return record, nil
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, record *schedule.DayAvailability) error {
	breaks := make([]breakRow, len(record.Breaks()))
	for i, b := range record.Breaks() {
		breaks[i] = breakRow{StartMin: b.Start().Minutes(), EndMin: b.End().Minutes()}
	}
	breaksJSON, err := json.Marshal(breaks)
	if err != nil {
		return infra.WrapRepoErr("failed to encode breaks", err)
	}

	query := `
		INSERT INTO staff_schedules (
			staff_id, date, is_day_off, work_start_min, work_end_min,
			breaks, slot_duration_min, max_bookings, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (staff_id, date) DO UPDATE
		SET is_day_off = EXCLUDED.is_day_off,
		    work_start_min = EXCLUDED.work_start_min,
		    work_end_min = EXCLUDED.work_end_min,
		    breaks = EXCLUDED.breaks,
		    slot_duration_min = EXCLUDED.slot_duration_min,
		    max_bookings = EXCLUDED.max_bookings,
		    updated_at = now()
	`
	_, err = r.pool.Exec(ctx, query,
		record.StaffID(),
		record.Date(),
		record.IsDayOff(),
		record.WorkingHours().Start().Minutes(),
		record.WorkingHours().End().Minutes(),
		breaksJSON,
		record.SlotDuration(),
		record.MaxBookings(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert schedule", err)
	}
	return nil
}

func toDayAvailability(
	staffID uuid.UUID,
	date time.Time,
	isDayOff bool,
	workStartMin, workEndMin int,
	breaksJSON []byte,
	slotDuration, maxBookings int,
) (*schedule.DayAvailability, error) {
	start, err := schedule.FromMinutes(workStartMin)
	if err != nil {
		return nil, err
	}
	end, err := schedule.FromMinutes(workEndMin)
	if err != nil {
		return nil, err
	}
	window, err := schedule.NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	var rows []breakRow
	if err = json.Unmarshal(breaksJSON, &rows); err != nil {
		return nil, err
	}
	breaks := make([]schedule.Window, 0, len(rows))
	for _, row := range rows {
		bStart, err := schedule.FromMinutes(row.StartMin)
		if err != nil {
			return nil, err
		}
		bEnd, err := schedule.FromMinutes(row.EndMin)
		if err != nil {
			return nil, err
		}
		w, err := schedule.NewWindow(bStart, bEnd)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, w)
	}

	return schedule.NewDayAvailability(staffID, date, isDayOff, window, breaks, slotDuration, maxBookings)
}
