package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache fronts the schedule repository with a Redis
// lookaside cache. Only availability records are cached; appointment
// intervals change on every booking and always come from Postgres.
type AvailabilityCache struct {
	client *redis.Client
	source shared.DayScheduleSource
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, source shared.DayScheduleSource, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

type breakEntry struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

type dayScheduleEntry struct {
	IsDayOff     bool         `json:"is_day_off"`
	WorkStartMin int          `json:"work_start_min"`
	WorkEndMin   int          `json:"work_end_min"`
	Breaks       []breakEntry `json:"breaks"`
	SlotDuration int          `json:"slot_duration_min"`
	MaxBookings  int          `json:"max_bookings"`
}

func (c *AvailabilityCache) FindDay(ctx context.Context, staffID uuid.UUID, date time.Time) (*schedule.DayAvailability, error) {
	key := scheduleKey(staffID, date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		record, decodeErr := decodeEntry(staffID, date, data)
		if decodeErr == nil {
			return record, nil
		}
		slog.Warn("dropping undecodable schedule cache entry", "key", key, "error", decodeErr.Error())
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("schedule cache read failed", "key", key, "error", err.Error())
	}

	record, err := c.source.FindDay(ctx, staffID, date)
	if err != nil {
		// Missing records are not cached: the default-window fallback
		// stays cheap and an upsert becomes visible immediately.
		return nil, err
	}

	if data, err = encodeEntry(record); err == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			slog.Warn("schedule cache write failed", "key", key, "error", setErr.Error())
		}
	}
	return record, nil
}

// Invalidate drops the cached record after a schedule upsert.
func (c *AvailabilityCache) Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error {
	return c.client.Del(ctx, scheduleKey(staffID, date)).Err()
}

func scheduleKey(staffID uuid.UUID, date time.Time) string {
	return "schedule:" + staffID.String() + ":" + schedule.TruncateDate(date).Format("2006-01-02")
}

func encodeEntry(record *schedule.DayAvailability) ([]byte, error) {
	entry := dayScheduleEntry{
		IsDayOff:     record.IsDayOff(),
		WorkStartMin: record.WorkingHours().Start().Minutes(),
		WorkEndMin:   record.WorkingHours().End().Minutes(),
		SlotDuration: record.SlotDuration(),
		MaxBookings:  record.MaxBookings(),
	}
	for _, b := range record.Breaks() {
		entry.Breaks = append(entry.Breaks, breakEntry{StartMin: b.Start().Minutes(), EndMin: b.End().Minutes()})
	}
	return json.Marshal(entry)
}

func decodeEntry(staffID uuid.UUID, date time.Time, data []byte) (*schedule.DayAvailability, error) {
	var entry dayScheduleEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	start, err := schedule.FromMinutes(entry.WorkStartMin)
	if err != nil {
		return nil, err
	}
	end, err := schedule.FromMinutes(entry.WorkEndMin)
	if err != nil {
		return nil, err
	}
	window, err := schedule.NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	breaks := make([]schedule.Window, 0, len(entry.Breaks))
	for _, b := range entry.Breaks {
		bStart, err := schedule.FromMinutes(b.StartMin)
		if err != nil {
			return nil, err
		}
		bEnd, err := schedule.FromMinutes(b.EndMin)
		if err != nil {
			return nil, err
		}
		w, err := schedule.NewWindow(bStart, bEnd)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, w)
	}

	return schedule.NewDayAvailability(staffID, date, entry.IsDayOff, window, breaks, entry.SlotDuration, entry.MaxBookings)
}
