package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"salescrm/internal/model"
	"salescrm/pkg/db/transactor"
)

const customerColumns = `id, name, contact_person, phone, email, address, source, remark,
	status, owner_id, return_reason, last_follow_up_at, created_at, updated_at`

// CustomerFilter narrows customer listing. OwnerID limits to a single
// owner (sales scope), DepartmentID to owners of one department (manager
// scope), Search matches name, phone or contact person.
type CustomerFilter struct {
	Status       model.CustomerStatus
	OwnerID      *string
	DepartmentID *string
	Search       string
	Offset       int
	Limit        int
}

// CustomerRepository is persistence for customers
type CustomerRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	FindByPhone(context.Context, string) (*model.Customer, error)
	FindPage(context.Context, CustomerFilter) ([]*model.Customer, int, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) error
	DeleteByID(context.Context, string) error
	AssignFromPool(ctx context.Context, id string, ownerID string, at time.Time) (bool, error)
	ReturnToPool(ctx context.Context, id string, reason string) (bool, error)
	TouchLastFollowUp(ctx context.Context, id string, at time.Time) error
	FindAssignedNotFollowedSince(ctx context.Context, cutoff time.Time) ([]*model.Customer, error)
}

type postgresCustomerRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresCustomerRepository builds new postgres CustomerRepository
func NewPostgresCustomerRepository(trx transactor.PgxTransactor) CustomerRepository {
	return &postgresCustomerRepository{trx: trx}
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns)
	return r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, id))
}

func (r *postgresCustomerRepository) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	q := fmt.Sprintf("SELECT %s FROM customers WHERE phone = $1", customerColumns)
	return r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, phone))
}

func (r *postgresCustomerRepository) FindPage(ctx context.Context, f CustomerFilter) ([]*model.Customer, int, error) {
	where := "WHERE c.status = $1"
	args := []any{f.Status}

	if f.OwnerID != nil {
		args = append(args, *f.OwnerID)
		where += fmt.Sprintf(" AND c.owner_id = $%d", len(args))
	}
	if f.DepartmentID != nil {
		args = append(args, *f.DepartmentID)
		where += fmt.Sprintf(" AND c.owner_id IN (SELECT id FROM users WHERE department_id = $%d)", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (c.name LIKE $%d OR c.phone LIKE $%d OR c.contact_person LIKE $%d)", n, n, n)
	}

	var total int
	countQ := fmt.Sprintf("SELECT COUNT(*) FROM customers c %s", where)
	if err := r.trx.Executor(ctx).QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// pool pages are ordered by most recent return, owned pages by creation
	order := "c.created_at DESC"
	if f.Status == model.CustomerStatusPool {
		order = "c.updated_at DESC"
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf("SELECT %s FROM customers c %s ORDER BY %s LIMIT $%d OFFSET $%d",
		qualifiedCustomerColumns(), where, order, len(args)-1, len(args))

	rows, err := r.trx.Executor(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := fmt.Sprintf(`INSERT INTO customers(%s)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, customerColumns)
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.ID, c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.Source, c.Remark,
		c.Status, c.OwnerID, c.ReturnReason, c.LastFollowUpAt, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := `UPDATE customers SET name = $1, contact_person = $2, phone = $3, email = $4,
		address = $5, source = $6, remark = $7, updated_at = now() WHERE id = $8`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.Source, c.Remark, c.ID)
	return err
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM customers WHERE id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	return err
}

// AssignFromPool transfers ownership only when the row still is in the pool.
// Returning false means another claim won the race or the customer was
// never pooled, which callers surface as an already-claimed conflict.
func (r *postgresCustomerRepository) AssignFromPool(ctx context.Context, id string, ownerID string, at time.Time) (bool, error) {
	q := `UPDATE customers SET status = $1, owner_id = $2, last_follow_up_at = $3,
		return_reason = NULL, updated_at = now() WHERE id = $4 AND status = $5`
	comm, err := r.trx.Executor(ctx).Exec(ctx, q,
		model.CustomerStatusAssigned, ownerID, at, id, model.CustomerStatusPool)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

// ReturnToPool clears ownership and records the reason. Last follow-up
// time is deliberately left untouched.
func (r *postgresCustomerRepository) ReturnToPool(ctx context.Context, id string, reason string) (bool, error) {
	q := `UPDATE customers SET status = $1, owner_id = NULL, return_reason = $2,
		updated_at = now() WHERE id = $3 AND status = $4`
	comm, err := r.trx.Executor(ctx).Exec(ctx, q,
		model.CustomerStatusPool, reason, id, model.CustomerStatusAssigned)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) TouchLastFollowUp(ctx context.Context, id string, at time.Time) error {
	q := "UPDATE customers SET last_follow_up_at = $1, updated_at = now() WHERE id = $2"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, at, id)
	return err
}

func (r *postgresCustomerRepository) FindAssignedNotFollowedSince(ctx context.Context, cutoff time.Time) ([]*model.Customer, error) {
	q := fmt.Sprintf(`SELECT %s FROM customers WHERE status = $1
		AND (last_follow_up_at IS NULL OR last_follow_up_at < $2)`, customerColumns)

	rows, err := r.trx.Executor(ctx).Query(ctx, q, model.CustomerStatusAssigned, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	c, err := r.scanInto(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCustomerRepository) scan(rows pgx.Rows) (*model.Customer, error) {
	return r.scanInto(rows.Scan)
}

func (r *postgresCustomerRepository) scanInto(scan func(...any) error) (*model.Customer, error) {
	var c model.Customer
	err := scan(&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address,
		&c.Source, &c.Remark, &c.Status, &c.OwnerID, &c.ReturnReason,
		&c.LastFollowUpAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func qualifiedCustomerColumns() string {
	return `c.id, c.name, c.contact_person, c.phone, c.email, c.address, c.source, c.remark,
	c.status, c.owner_id, c.return_reason, c.last_follow_up_at, c.created_at, c.updated_at`
}
