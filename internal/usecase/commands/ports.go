package commands

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Write-side snapshots prevent dependency on read-side query types.
type StaffSnapshot struct {
	ID      uuid.UUID
	SalonID uuid.UUID
	Name    string
	Active  bool
}

type CustomerSnapshot struct {
	ID      uuid.UUID
	SalonID uuid.UUID
	Name    string
}

type ServiceSnapshot struct {
	ID          uuid.UUID
	SalonID     uuid.UUID
	Name        string
	DurationMin int
	PriceCents  int64
	Active      bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	SalonID      *uuid.UUID
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment) error
	// Update only applies when the stored status still matches
	// expectedStatus, so a concurrent transition cannot be overwritten.
	Update(ctx context.Context, tx pgx.Tx, appt *appointment.Appointment, expectedStatus appointment.Status) error
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	FindByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*appointment.Appointment, error)
}

type AvailabilityRepository interface {
	shared.DayScheduleSource
	Upsert(ctx context.Context, record *schedule.DayAvailability) error
}

type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StaffSnapshot, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerSnapshot, error)
}

type ServiceRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*ServiceSnapshot, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// ScheduleCacheInvalidator drops the cached availability record after a
// schedule upsert. Appointment intervals are never cached, so booking
// writes do not need it.
type ScheduleCacheInvalidator interface {
	Invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) error
}
