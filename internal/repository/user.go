package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

const userColumns = `id, username, password_hash, name, role, department_id,
	is_active, login_attempts, locked_until, created_at`

// UserRepository is persistence for users
type UserRepository interface {
	Create(context.Context, *model.User) error
	FindByUsername(context.Context, string) (*model.User, error)
	FindByID(context.Context, string) (*model.User, error)
	UpdateLoginState(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error
}

type postgresUserRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresUserRepository builds new postgres UserRepository
func NewPostgresUserRepository(trx transactor.PgxTransactor) UserRepository {
	return &postgresUserRepository{trx: trx}
}

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	q := `INSERT INTO users(id, username, password_hash, name, role, department_id, is_active)
		VALUES($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Role, u.DepartmentID, u.IsActive)
	return err
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE username = $1"
	return r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, username))
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE id = $1"
	return r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, id))
}

func (r *postgresUserRepository) UpdateLoginState(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
	q := "UPDATE users SET login_attempts = $1, locked_until = $2 WHERE id = $3"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, attempts, lockedUntil, id)
	return err
}

func (r *postgresUserRepository) scanRow(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role, &u.DepartmentID,
		&u.IsActive, &u.LoginAttempts, &u.LockedUntil, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
