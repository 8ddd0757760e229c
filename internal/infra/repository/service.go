package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*commands.ServiceSnapshot, error) {
	query := `
		SELECT id, salon_id, name, duration_min, price_cents, active
		FROM services
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find services", err)
	}
	defer rows.Close()

	var snapshots []*commands.ServiceSnapshot
	for rows.Next() {
		var s commands.ServiceSnapshot
		if err = rows.Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMin, &s.PriceCents, &s.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		snapshots = append(snapshots, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate services", err)
	}
	return snapshots, nil
}
