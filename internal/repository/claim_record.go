package repository

import (
	"context"
	"time"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// ClaimRecordRepository is persistence for the append-only claim audit.
// Rows are never updated or deleted.
type ClaimRecordRepository interface {
	Create(context.Context, *model.ClaimRecord) error
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type postgresClaimRecordRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresClaimRecordRepository builds new postgres ClaimRecordRepository
func NewPostgresClaimRecordRepository(trx transactor.PgxTransactor) ClaimRecordRepository {
	return &postgresClaimRecordRepository{trx: trx}
}

func (r *postgresClaimRecordRepository) Create(ctx context.Context, cr *model.ClaimRecord) error {
	q := "INSERT INTO claim_records(id, user_id, customer_id, claimed_at) VALUES($1, $2, $3, $4)"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, cr.ID, cr.UserID, cr.CustomerID, cr.ClaimedAt)
	return err
}

func (r *postgresClaimRecordRepository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	q := "SELECT COUNT(*) FROM claim_records WHERE user_id = $1 AND claimed_at >= $2"

	var count int
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, userID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
