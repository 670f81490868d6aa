package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

// DepartmentRepository is persistence for departments
type DepartmentRepository interface {
	Create(context.Context, *model.Department) error
	FindByID(context.Context, string) (*model.Department, error)
	FindAll(context.Context) ([]*model.Department, error)
}

type postgresDepartmentRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresDepartmentRepository builds new postgres DepartmentRepository
func NewPostgresDepartmentRepository(trx transactor.PgxTransactor) DepartmentRepository {
	return &postgresDepartmentRepository{trx: trx}
}

func (r *postgresDepartmentRepository) Create(ctx context.Context, d *model.Department) error {
	q := "INSERT INTO departments(id, name) VALUES($1, $2)"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, d.ID, d.Name)
	return err
}

func (r *postgresDepartmentRepository) FindByID(ctx context.Context, id string) (*model.Department, error) {
	q := "SELECT id, name FROM departments WHERE id = $1"

	var d model.Department
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, id).Scan(&d.ID, &d.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDepartmentRepository) FindAll(ctx context.Context) ([]*model.Department, error) {
	q := "SELECT id, name FROM departments ORDER BY name"

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}
