package repository

import (
	"context"
	"encoding/json"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// rescheduleEntryRow is the JSONB shape of one history entry.
type rescheduleEntryRow struct {
	OriginalDate string    `json:"original_date"`
	OriginalMin  int       `json:"original_min"`
	NewDate      string    `json:"new_date"`
	NewMin       int       `json:"new_min"`
	Reason       string    `json:"reason,omitempty"`
	At           time.Time `json:"at"`
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error {
	history, err := marshalHistory(appt.RescheduleHistory())
	if err != nil {
		return infra.WrapRepoErr("failed to encode reschedule history", err)
	}

	query := `
		INSERT INTO appointments (
			id, salon_id, customer_id, staff_id, date, start_min, end_min,
			status, notes, cancel_reason, reschedule_history,
			actual_start_time, actual_end_time, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, query,
		appt.ID(),
		appt.SalonID(),
		appt.CustomerID(),
		appt.StaffID(),
		appt.Date(),
		appt.StartTime().Minutes(),
		appt.EndTime().Minutes(),
		string(appt.Status()),
		appt.Notes(),
		appt.CancelReason(),
		history,
		appt.ActualStartTime(),
		appt.ActualEndTime(),
		appt.CreatedAt(),
		appt.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}

	lineQuery := `
		INSERT INTO appointment_services (appointment_id, position, service_id, duration_min, price_cents)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, line := range appt.Services() {
		if _, err = tx.Exec(ctx, lineQuery, appt.ID(), i, line.ServiceID, line.DurationMin, line.PriceCents); err != nil {
			return infra.WrapRepoErr("failed to create appointment service line", err)
		}
	}
	return nil
}

// Update persists the mutable fields. Service lines are immutable after
// booking, so they are left untouched. The write is guarded on the
// status the caller loaded: if another transition landed in between,
// no row matches and the stale write is rejected instead of applied.
func (r *AppointmentRepository) Update(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment, expectedStatus appointment.Status) error {
	history, err := marshalHistory(appt.RescheduleHistory())
	if err != nil {
		return infra.WrapRepoErr("failed to encode reschedule history", err)
	}

	query := `
		UPDATE appointments
		SET date = $2, start_min = $3, end_min = $4, status = $5,
		    notes = $6, cancel_reason = $7, reschedule_history = $8,
		    actual_start_time = $9, actual_end_time = $10, updated_at = $11
		WHERE id = $1 AND status = $12
	`
	tag, err := tx.Exec(ctx, query,
		appt.ID(),
		appt.Date(),
		appt.StartTime().Minutes(),
		appt.EndTime().Minutes(),
		string(appt.Status()),
		appt.Notes(),
		appt.CancelReason(),
		history,
		appt.ActualStartTime(),
		appt.ActualEndTime(),
		appt.UpdatedAt(),
		string(expectedStatus),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		var current string
		err = tx.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, appt.ID()).Scan(&current)
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
		}
		if err != nil {
			return infra.WrapRepoErr("failed to check appointment status", err)
		}
		return infra.WrapRepoErr("appointment status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

const appointmentColumns = `
	id, salon_id, customer_id, staff_id, date, start_min, end_min,
	status, notes, cancel_reason, reschedule_history,
	actual_start_time, actual_end_time, created_at, updated_at
`

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := r.scanAppointment(ctx, r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return appt, nil
}

func (r *AppointmentRepository) FindByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE staff_id = $1 AND date = $2
		ORDER BY start_min
	`
	rows, err := r.pool.Query(ctx, query, staffID, schedule.TruncateDate(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find appointments by staff and date", err)
	}
	defer rows.Close()

	var appts []*appointment.Appointment
	for rows.Next() {
		appt, err := r.scanAppointment(ctx, rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		appts = append(appts, appt)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return appts, nil
}

func (r *AppointmentRepository) scanAppointment(ctx context.Context, row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, salonID, customerID, staffID uuid.UUID
		date                             time.Time
		startMin, endMin                 int
		status, notes, cancelReason      string
		historyJSON                      []byte
		actualStart, actualEnd           *time.Time
		createdAt, updatedAt             time.Time
	)
	err := row.Scan(
		&id, &salonID, &customerID, &staffID, &date, &startMin, &endMin,
		&status, &notes, &cancelReason, &historyJSON,
		&actualStart, &actualEnd, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lines, err := r.findServiceLines(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := unmarshalHistory(historyJSON)
	if err != nil {
		return nil, err
	}

	startTime, err := schedule.FromMinutes(startMin)
	if err != nil {
		return nil, err
	}
	endTime, err := schedule.FromMinutes(endMin)
	if err != nil {
		return nil, err
	}

	return appointment.Reconstruct(
		id, salonID, customerID, staffID,
		date, startTime, endTime, lines,
		appointment.Status(status), notes, history, cancelReason,
		actualStart, actualEnd, createdAt, updatedAt,
	), nil
}

func (r *AppointmentRepository) findServiceLines(ctx context.Context, appointmentID uuid.UUID) ([]appointment.ServiceLine, error) {
	query := `
		SELECT service_id, duration_min, price_cents
		FROM appointment_services
		WHERE appointment_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []appointment.ServiceLine
	for rows.Next() {
		var line appointment.ServiceLine
		if err = rows.Scan(&line.ServiceID, &line.DurationMin, &line.PriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func marshalHistory(history []appointment.RescheduleEntry) ([]byte, error) {
	out := make([]rescheduleEntryRow, len(history))
	for i, e := range history {
		out[i] = rescheduleEntryRow{
			OriginalDate: e.OriginalDate.Format("2006-01-02"),
			OriginalMin:  e.OriginalTime.Minutes(),
			NewDate:      e.NewDate.Format("2006-01-02"),
			NewMin:       e.NewTime.Minutes(),
			Reason:       e.Reason,
			At:           e.At,
		}
	}
	return json.Marshal(out)
}

func unmarshalHistory(data []byte) ([]appointment.RescheduleEntry, error) {
	var rows []rescheduleEntryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	history := make([]appointment.RescheduleEntry, 0, len(rows))
	for _, row := range rows {
		originalDate, err := time.ParseInLocation("2006-01-02", row.OriginalDate, time.UTC)
		if err != nil {
			return nil, err
		}
		newDate, err := time.ParseInLocation("2006-01-02", row.NewDate, time.UTC)
		if err != nil {
			return nil, err
		}
		originalTime, err := schedule.FromMinutes(row.OriginalMin)
		if err != nil {
			return nil, err
		}
		newTime, err := schedule.FromMinutes(row.NewMin)
		if err != nil {
			return nil, err
		}
		history = append(history, appointment.RescheduleEntry{
			OriginalDate: originalDate,
			OriginalTime: originalTime,
			NewDate:      newDate,
			NewTime:      newTime,
			Reason:       row.Reason,
			At:           row.At,
		})
	}
	return history, nil
}
