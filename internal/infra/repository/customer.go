package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.CustomerSnapshot, error) {
	query := `SELECT id, salon_id, name FROM customers WHERE id = $1`

	var snapshot commands.CustomerSnapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(&snapshot.ID, &snapshot.SalonID, &snapshot.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}
	return &snapshot, nil
}
