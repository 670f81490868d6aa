package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// SystemConfigRepository is persistence for tunable key/value parameters
type SystemConfigRepository interface {
	FindByKey(context.Context, string) (*model.SystemConfig, error)
	FindAll(context.Context) ([]*model.SystemConfig, error)
	Upsert(ctx context.Context, key string, value string) error
}

type postgresSystemConfigRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresSystemConfigRepository builds new postgres SystemConfigRepository
func NewPostgresSystemConfigRepository(trx transactor.PgxTransactor) SystemConfigRepository {
	return &postgresSystemConfigRepository{trx: trx}
}

func (r *postgresSystemConfigRepository) FindByKey(ctx context.Context, key string) (*model.SystemConfig, error) {
	q := "SELECT key, value FROM system_configs WHERE key = $1"

	var cfg model.SystemConfig
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, key).Scan(&cfg.Key, &cfg.Value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *postgresSystemConfigRepository) FindAll(ctx context.Context) ([]*model.SystemConfig, error) {
	q := "SELECT key, value FROM system_configs ORDER BY key"

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := make([]*model.SystemConfig, 0)
	for rows.Next() {
		var cfg model.SystemConfig
		if err := rows.Scan(&cfg.Key, &cfg.Value); err != nil {
			return nil, err
		}
		configs = append(configs, &cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *postgresSystemConfigRepository) Upsert(ctx context.Context, key string, value string) error {
	q := `INSERT INTO system_configs(key, value) VALUES($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, key, value)
	return err
}
