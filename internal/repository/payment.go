package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// PaymentRepository is persistence for contract payments
type PaymentRepository interface {
	Create(context.Context, *model.Payment) error
	FindByContractID(context.Context, string) ([]*model.Payment, error)
	TotalByContractID(context.Context, string) (decimal.Decimal, error)
}

type postgresPaymentRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresPaymentRepository builds new postgres PaymentRepository
func NewPostgresPaymentRepository(trx transactor.PgxTransactor) PaymentRepository {
	return &postgresPaymentRepository{trx: trx}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	q := `INSERT INTO payments(id, contract_id, amount, payment_date, remark, created_at)
		VALUES($1, $2, $3, $4, $5, $6)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		p.ID, p.ContractID, p.Amount, p.PaymentDate, p.Remark, p.CreatedAt)
	return err
}

func (r *postgresPaymentRepository) FindByContractID(ctx context.Context, contractID string) ([]*model.Payment, error) {
	q := `SELECT id, contract_id, amount, payment_date, remark, created_at
		FROM payments WHERE contract_id = $1 ORDER BY payment_date DESC`

	rows, err := r.trx.Executor(ctx).Query(ctx, q, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ContractID, &p.Amount, &p.PaymentDate, &p.Remark, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *postgresPaymentRepository) TotalByContractID(ctx context.Context, contractID string) (decimal.Decimal, error) {
	q := "SELECT COALESCE(SUM(amount), 0) FROM payments WHERE contract_id = $1"

	var total decimal.Decimal
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, contractID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
