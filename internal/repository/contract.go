package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

const contractColumns = "id, serial_number, customer_id, amount, sign_date, status, remark, created_at"

// ContractRepository is persistence for contracts
type ContractRepository interface {
	Create(context.Context, *model.Contract) error
	FindByID(context.Context, string) (*model.Contract, error)
	FindByCustomerID(context.Context, string) ([]*model.Contract, error)
	// LastSerialNumber returns the highest serial starting with prefix,
	// empty string when none exists yet.
	LastSerialNumber(ctx context.Context, prefix string) (string, error)
	UpdateStatus(ctx context.Context, id string, status model.ContractStatus) error
}

type postgresContractRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresContractRepository builds new postgres ContractRepository
func NewPostgresContractRepository(trx transactor.PgxTransactor) ContractRepository {
	return &postgresContractRepository{trx: trx}
}

func (r *postgresContractRepository) Create(ctx context.Context, c *model.Contract) error {
	q := `INSERT INTO contracts(` + contractColumns + `)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.ID, c.SerialNumber, c.CustomerID, c.Amount, c.SignDate, c.Status, c.Remark, c.CreatedAt)
	return err
}

func (r *postgresContractRepository) FindByID(ctx context.Context, id string) (*model.Contract, error) {
	q := "SELECT " + contractColumns + " FROM contracts WHERE id = $1"
	return r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, id))
}

func (r *postgresContractRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Contract, error) {
	q := "SELECT " + contractColumns + " FROM contracts WHERE customer_id = $1 ORDER BY created_at DESC"

	rows, err := r.trx.Executor(ctx).Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]*model.Contract, 0)
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.SerialNumber, &c.CustomerID, &c.Amount, &c.SignDate, &c.Status, &c.Remark, &c.CreatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *postgresContractRepository) LastSerialNumber(ctx context.Context, prefix string) (string, error) {
	q := `SELECT serial_number FROM contracts WHERE serial_number LIKE $1
		ORDER BY serial_number DESC LIMIT 1`

	var serial string
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, prefix+"%").Scan(&serial); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return serial, nil
}

func (r *postgresContractRepository) UpdateStatus(ctx context.Context, id string, status model.ContractStatus) error {
	q := "UPDATE contracts SET status = $1 WHERE id = $2"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, status, id)
	return err
}

func (r *postgresContractRepository) scanRow(row pgx.Row) (*model.Contract, error) {
	var c model.Contract
	err := row.Scan(&c.ID, &c.SerialNumber, &c.CustomerID, &c.Amount, &c.SignDate, &c.Status, &c.Remark, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
