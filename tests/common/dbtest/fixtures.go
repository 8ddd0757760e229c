//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func DefaultSalonID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var salonID uuid.UUID
	ctx := context.Background()
	err := db.QueryRow(ctx, "SELECT id FROM salons WHERE name = 'Main Salon' LIMIT 1").Scan(&salonID)
	require.NoError(t, err)
	return salonID
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	salonID := DefaultSalonID(t, db)

	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, salon_id, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, salonID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active", email).Scan(&userID)
	}

	return userID
}

func CreateTestStaff(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	staffID := uuid.New()
	salonID := DefaultSalonID(t, db)

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO staff (id, salon_id, name, active) VALUES ($1, $2, $3, true)",
		staffID, salonID, name)
	require.NoError(t, err)

	return staffID
}

func CreateTestCustomer(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	salonID := DefaultSalonID(t, db)

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO customers (id, salon_id, name) VALUES ($1, $2, $3)",
		customerID, salonID, name)
	require.NoError(t, err)

	return customerID
}

func CreateTestService(t *testing.T, db DBLike, name string, durationMin int, priceCents int64) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	salonID := DefaultSalonID(t, db)

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO services (id, salon_id, name, duration_min, price_cents, active) VALUES ($1, $2, $3, $4, $5, true)",
		serviceID, salonID, name, durationMin, priceCents)
	require.NoError(t, err)

	return serviceID
}

// SetDaySchedule writes an availability record directly, bypassing the API.
func SetDaySchedule(t *testing.T, db DBLike, staffID uuid.UUID, date time.Time, isDayOff bool, workStartMin, workEndMin, slotDurationMin, maxBookings int) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO staff_schedules (id, staff_id, date, is_day_off, work_start_min, work_end_min, breaks, slot_duration_min, max_bookings)
		VALUES ($1, $2, $3, $4, $5, $6, '[]', $7, $8)
		ON CONFLICT (staff_id, date) DO UPDATE SET
			is_day_off = EXCLUDED.is_day_off,
			work_start_min = EXCLUDED.work_start_min,
			work_end_min = EXCLUDED.work_end_min,
			slot_duration_min = EXCLUDED.slot_duration_min,
			max_bookings = EXCLUDED.max_bookings`,
		uuid.New(), staffID, date, isDayOff, workStartMin, workEndMin, slotDurationMin, maxBookings)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO salons (id, name) VALUES
		    (gen_random_uuid(), 'Main Salon'),
		    (gen_random_uuid(), 'Second Salon')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
