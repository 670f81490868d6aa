package repository

import (
	"context"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// SystemLogRepository is persistence for the append-only audit trail.
// Entries are written in the same transaction as the change they record,
// so a failed insert rolls the whole operation back.
type SystemLogRepository interface {
	Create(context.Context, *model.SystemLog) error
}

type postgresSystemLogRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresSystemLogRepository builds new postgres SystemLogRepository
func NewPostgresSystemLogRepository(trx transactor.PgxTransactor) SystemLogRepository {
	return &postgresSystemLogRepository{trx: trx}
}

func (r *postgresSystemLogRepository) Create(ctx context.Context, l *model.SystemLog) error {
	q := `INSERT INTO system_logs(id, user_id, action, target, target_id, detail, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		l.ID, l.UserID, l.Action, l.Target, l.TargetID, l.Detail, l.CreatedAt)
	return err
}
