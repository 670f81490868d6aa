package repository

import (
	"context"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// FollowUpRepository is persistence for follow-up records
type FollowUpRepository interface {
	Create(context.Context, *model.FollowUp) error
	FindByCustomerID(context.Context, string) ([]*model.FollowUp, error)
}

type postgresFollowUpRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresFollowUpRepository builds new postgres FollowUpRepository
func NewPostgresFollowUpRepository(trx transactor.PgxTransactor) FollowUpRepository {
	return &postgresFollowUpRepository{trx: trx}
}

func (r *postgresFollowUpRepository) Create(ctx context.Context, f *model.FollowUp) error {
	q := `INSERT INTO follow_ups(id, customer_id, user_id, content, type, next_follow_up_at, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		f.ID, f.CustomerID, f.UserID, f.Content, f.Type, f.NextFollowUpAt, f.CreatedAt)
	return err
}

func (r *postgresFollowUpRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.FollowUp, error) {
	q := `SELECT id, customer_id, user_id, content, type, next_follow_up_at, created_at
		FROM follow_ups WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := r.trx.Executor(ctx).Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := make([]*model.FollowUp, 0)
	for rows.Next() {
		var f model.FollowUp
		if err := rows.Scan(&f.ID, &f.CustomerID, &f.UserID, &f.Content, &f.Type, &f.NextFollowUpAt, &f.CreatedAt); err != nil {
			return nil, err
		}
		followUps = append(followUps, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return followUps, nil
}
