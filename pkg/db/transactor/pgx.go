package transactor

import (
	"context"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxTxKey struct{}

func withPgTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, tx)
}

func pgxTxValue(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// PgxTransactor starts pgx transactions and hands repositories an executor
// bound to the transaction carried in the context, or to the pool when no
// transaction is open.
type PgxTransactor interface {
	Transactor
	WithinTransactionWithOptions(context.Context, func(context.Context) error, pgx.TxOptions) error
	Executor(ctx context.Context) pgxtype.Querier
}

type pgxTransactor struct {
	pool *pgxpool.Pool
}

// NewPgxTransactor builds new PgxTransactor
func NewPgxTransactor(p *pgxpool.Pool) PgxTransactor {
	return &pgxTransactor{pool: p}
}

func (t *pgxTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, pgx.TxOptions{})
}

func (t *pgxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts pgx.TxOptions) (err error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		var txErr error
		if err != nil {
			txErr = tx.Rollback(ctx)
		} else {
			txErr = tx.Commit(ctx)
		}

		if txErr != nil {
			err = txErr
		}
	}()

	err = txFunc(withPgTx(ctx, tx))
	return err
}

func (t *pgxTransactor) Executor(ctx context.Context) pgxtype.Querier {
	if tx := pgxTxValue(ctx); tx != nil {
		return tx
	}
	return t.pool
}
