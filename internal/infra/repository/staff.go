package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StaffRepository struct {
	pool *pgxpool.Pool
}

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.StaffSnapshot, error) {
	query := `SELECT id, salon_id, name, active FROM staff WHERE id = $1`

	var snapshot commands.StaffSnapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&snapshot.ID, &snapshot.SalonID, &snapshot.Name, &snapshot.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff by ID", err)
	}
	return &snapshot, nil
}

func (r *StaffRepository) Exists(ctx context.Context, staffID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM staff WHERE id = $1 AND active)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, staffID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check staff existence", err)
	}
	return exists, nil
}
