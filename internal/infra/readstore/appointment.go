package readstore

import (
	"context"
	"encoding/json"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentReadStore struct {
	pool *pgxpool.Pool
}

func NewAppointmentReadStore(pool *pgxpool.Pool) *AppointmentReadStore {
	return &AppointmentReadStore{pool: pool}
}

const appointmentViewQuery = `
	SELECT a.id, a.salon_id, a.customer_id, c.name, a.staff_id, s.name,
	       a.date, a.start_min, a.end_min, a.status, a.notes, a.cancel_reason,
	       a.reschedule_history, a.actual_start_time, a.actual_end_time,
	       a.created_at, a.updated_at
	FROM appointments a
	JOIN customers c ON c.id = a.customer_id
	JOIN staff s ON s.id = a.staff_id
`

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	query := appointmentViewQuery + ` WHERE a.id = $1`

	view, err := r.scanView(ctx, r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment view", err)
	}
	return view, nil
}

func (r *AppointmentReadStore) FindByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*queries.AppointmentView, error) {
	query := appointmentViewQuery + ` WHERE a.staff_id = $1 AND a.date = $2 ORDER BY a.start_min`
	return r.queryViews(ctx, query, staffID, schedule.TruncateDate(date))
}

func (r *AppointmentReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit int, after *queries.PageCursor) ([]*queries.AppointmentView, error) {
	query := appointmentViewQuery + ` WHERE a.customer_id = $1`
	args := []any{customerID}
	if after != nil {
		query += ` AND (a.created_at, a.id) < ($2, $3) ORDER BY a.created_at DESC, a.id DESC LIMIT $4`
		args = append(args, after.CreatedAt, after.ID, limit)
	} else {
		query += ` ORDER BY a.created_at DESC, a.id DESC LIMIT $2`
		args = append(args, limit)
	}
	return r.queryViews(ctx, query, args...)
}

func (r *AppointmentReadStore) queryViews(ctx context.Context, query string, args ...any) ([]*queries.AppointmentView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query appointment views", err)
	}
	defer rows.Close()

	var views []*queries.AppointmentView
	for rows.Next() {
		view, err := r.scanView(ctx, rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment view", err)
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointment views", err)
	}
	return views, nil
}

// historyRow mirrors the JSONB layout written by the appointment
// repository.
type historyRow struct {
	OriginalDate string    `json:"original_date"`
	OriginalMin  int       `json:"original_min"`
	NewDate      string    `json:"new_date"`
	NewMin       int       `json:"new_min"`
	Reason       string    `json:"reason,omitempty"`
	At           time.Time `json:"at"`
}

func (r *AppointmentReadStore) scanView(ctx context.Context, row pgx.Row) (*queries.AppointmentView, error) {
	var (
		view             queries.AppointmentView
		startMin, endMin int
		historyJSON      []byte
	)
	err := row.Scan(
		&view.ID, &view.SalonID, &view.CustomerID, &view.CustomerName,
		&view.StaffID, &view.StaffName,
		&view.Date, &startMin, &endMin, &view.Status, &view.Notes, &view.CancelReason,
		&historyJSON, &view.ActualStartTime, &view.ActualEndTime,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.StartTime = minutesToClock(startMin)
	view.EndTime = minutesToClock(endMin)

	if view.RescheduleHistory, err = toRescheduleViews(historyJSON); err != nil {
		return nil, err
	}

	if view.Services, err = r.findServiceViews(ctx, view.ID); err != nil {
		return nil, err
	}
	for _, svc := range view.Services {
		view.TotalDurationMin += svc.DurationMin
		view.TotalPriceCents += svc.PriceCents
	}
	return &view, nil
}

func (r *AppointmentReadStore) findServiceViews(ctx context.Context, appointmentID uuid.UUID) ([]queries.ServiceLineView, error) {
	query := `
		SELECT l.service_id, s.name, l.duration_min, l.price_cents
		FROM appointment_services l
		JOIN services s ON s.id = l.service_id
		WHERE l.appointment_id = $1
		ORDER BY l.position
	`
	rows, err := r.pool.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []queries.ServiceLineView
	for rows.Next() {
		var v queries.ServiceLineView
		if err = rows.Scan(&v.ServiceID, &v.Name, &v.DurationMin, &v.PriceCents); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func toRescheduleViews(data []byte) ([]queries.RescheduleView, error) {
	var rows []historyRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	views := make([]queries.RescheduleView, 0, len(rows))
	for _, row := range rows {
		originalDate, err := time.ParseInLocation("2006-01-02", row.OriginalDate, time.UTC)
		if err != nil {
			return nil, err
		}
		newDate, err := time.ParseInLocation("2006-01-02", row.NewDate, time.UTC)
		if err != nil {
			return nil, err
		}
		views = append(views, queries.RescheduleView{
			OriginalDate: originalDate,
			OriginalTime: minutesToClock(row.OriginalMin),
			NewDate:      newDate,
			NewTime:      minutesToClock(row.NewMin),
			Reason:       row.Reason,
			At:           row.At,
		})
	}
	return views, nil
}

func minutesToClock(m int) string {
	t, err := schedule.FromMinutes(m)
	if err != nil {
		return ""
	}
	return t.String()
}
