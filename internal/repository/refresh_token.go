package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// RefreshTokenRepository is persistence for refresh tokens
type RefreshTokenRepository interface {
	Create(context.Context, *model.RefreshToken) error
	FindByID(context.Context, string) (*model.RefreshToken, error)
	FindByUserID(context.Context, string) ([]*model.RefreshToken, error)
	DeleteByID(context.Context, string) error
	DeleteByUserID(context.Context, string) error
}

type postgresRefreshTokenRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresRefreshTokenRepository builds new postgres RefreshTokenRepository
func NewPostgresRefreshTokenRepository(trx transactor.PgxTransactor) RefreshTokenRepository {
	return &postgresRefreshTokenRepository{trx: trx}
}

func (r *postgresRefreshTokenRepository) Create(ctx context.Context, t *model.RefreshToken) error {
	q := `INSERT INTO refresh_tokens(id, user_id, fingerprint, expires_in, created_at)
		VALUES($1, $2, $3, $4, $5)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, t.ID, t.UserID, t.Fingerprint, t.ExpiresIn, t.CreatedAt)
	return err
}

func (r *postgresRefreshTokenRepository) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	q := "SELECT id, user_id, fingerprint, expires_in, created_at FROM refresh_tokens WHERE id = $1"

	var t model.RefreshToken
	err := r.trx.Executor(ctx).QueryRow(ctx, q, id).Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.ExpiresIn, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresRefreshTokenRepository) FindByUserID(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	q := "SELECT id, user_id, fingerprint, expires_in, created_at FROM refresh_tokens WHERE user_id = $1"

	rows, err := r.trx.Executor(ctx).Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make([]*model.RefreshToken, 0)
	for rows.Next() {
		var t model.RefreshToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.ExpiresIn, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *postgresRefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM refresh_tokens WHERE id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	return err
}

func (r *postgresRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	q := "DELETE FROM refresh_tokens WHERE user_id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, userID)
	return err
}
