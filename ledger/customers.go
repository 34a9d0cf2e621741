package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gren-95/FinanceFlux/finance"
)

func (l *Ledger) ListCustomers(ctx context.Context) ([]finance.Customer, error) {
	rows, err := l.db.QueryContext(ctx, `select id, name, address, email, created_at from customers order by name asc, id asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list customers, cause %w", err)
	}
	defer rows.Close()
	var out []finance.Customer
	for rows.Next() {
		var c finance.Customer
		var created int64
		err = rows.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &created)
		if err != nil {
			return nil, fmt.Errorf("unable to scan customer, cause %w", err)
		}
		c.CreatedAt = time.UnixMilli(created)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list customers, cause %w", err)
	}
	return out, nil
}

func (l *Ledger) GetCustomer(ctx context.Context, id int64) (*finance.Customer, error) {
	var c finance.Customer
	var created int64
	err := l.db.QueryRowContext(ctx, `select id, name, address, email, created_at from customers where id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Email, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, CustomerNotFound{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load customer %v, cause %w", id, err)
	}
	c.CreatedAt = time.UnixMilli(created)
	return &c, nil
}

// CreateCustomer inserts c and fills its ID and CreatedAt.
func (l *Ledger) CreateCustomer(ctx context.Context, c *finance.Customer) error {
	now := time.UnixMilli(time.Now().UnixMilli())
	err := l.db.QueryRowContext(ctx, `insert into customers(name, address, email, created_at) values (?, ?, ?, ?) returning id`,
		c.Name, c.Address, c.Email, now.UnixMilli()).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("unable to create customer, cause %w", err)
	}
	c.CreatedAt = now
	return nil
}

// UpdateCustomer replaces the editable fields of the customer with c.ID.
func (l *Ledger) UpdateCustomer(ctx context.Context, c *finance.Customer) error {
	var created int64
	err := l.db.QueryRowContext(ctx, `update customers set name = ?, address = ?, email = ? where id = ? returning created_at`,
		c.Name, c.Address, c.Email, c.ID).Scan(&created)
	if errors.Is(err, sql.ErrNoRows) {
		return CustomerNotFound{ID: c.ID}
	} else if err != nil {
		return fmt.Errorf("unable to update customer %v, cause %w", c.ID, err)
	}
	c.CreatedAt = time.UnixMilli(created)
	return nil
}

func (l *Ledger) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `delete from customers where id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete customer %v, cause %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to delete customer %v, cause %w", id, err)
	} else if n == 0 {
		return CustomerNotFound{ID: id}
	}
	return nil
}
