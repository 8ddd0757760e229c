package readstore

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	query := `
		SELECT id, email, role, salon_id, is_active, last_login
		FROM users
		WHERE id = $1
	`

	var view queries.AuthorizedUserView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.Role, &view.SalonID, &view.IsActive, &view.LastLogin,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}
