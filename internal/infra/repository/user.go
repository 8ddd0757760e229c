package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*commands.UserSnapshot, error) {
	query := `
		SELECT id, email, password_hash, role, salon_id
		FROM users
		WHERE email = $1 AND is_active
	`

	var snapshot commands.UserSnapshot
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&snapshot.ID, &snapshot.Email, &snapshot.PasswordHash, &snapshot.Role, &snapshot.SalonID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snapshot, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, userID, at); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
