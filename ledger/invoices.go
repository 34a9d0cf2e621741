package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gren-95/FinanceFlux/finance"
)

const invoiceColumns = `id, number, date, description, quantity, price, vat_percentage,
	payment_method, currency, customer_id, sum, created_at`

type (
	rowScanner interface {
		Scan(dest ...interface{}) error
	}
)

func scanInvoice(row rowScanner) (finance.Invoice, error) {
	var i finance.Invoice
	var customer sql.NullInt64
	var created int64
	err := row.Scan(&i.ID, &i.Number, &i.Date, &i.Description, &i.Quantity, &i.Price, &i.VATPercentage,
		&i.PaymentMethod, &i.Currency, &customer, &i.Sum, &created)
	if err != nil {
		return i, err
	}
	if customer.Valid {
		id := customer.Int64
		i.CustomerID = &id
	}
	i.CreatedAt = time.UnixMilli(created)
	return i, nil
}

func (l *Ledger) ListInvoices(ctx context.Context) ([]finance.Invoice, error) {
	rows, err := l.db.QueryContext(ctx, `select `+invoiceColumns+` from invoices order by date desc, id desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list invoices, cause %w", err)
	}
	defer rows.Close()
	var out []finance.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan invoice, cause %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list invoices, cause %w", err)
	}
	return out, nil
}

func (l *Ledger) GetInvoice(ctx context.Context, id int64) (*finance.Invoice, error) {
	i, err := scanInvoice(l.db.QueryRowContext(ctx, `select `+invoiceColumns+` from invoices where id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, InvoiceNotFound{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load invoice %v, cause %w", id, err)
	}
	return &i, nil
}

// CreateInvoice inserts inv (which should already be normalized) and fills
// its ID and CreatedAt.
func (l *Ledger) CreateInvoice(ctx context.Context, inv *finance.Invoice) error {
	if inv.CustomerID != nil {
		if _, err := l.GetCustomer(ctx, *inv.CustomerID); err != nil {
			return err
		}
	}
	now := time.UnixMilli(time.Now().UnixMilli())
	var customer interface{}
	if inv.CustomerID != nil {
		customer = *inv.CustomerID
	}
	err := l.db.QueryRowContext(ctx, `insert into invoices(number, date, description, quantity, price, vat_percentage,
		payment_method, currency, customer_id, sum, created_at)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) returning id`,
		inv.Number, inv.Date, inv.Description, inv.Quantity, inv.Price, inv.VATPercentage,
		inv.PaymentMethod, inv.Currency, customer, inv.Sum, now.UnixMilli()).Scan(&inv.ID)
	if isUniqueViolation(err) {
		return DuplicateInvoice{Number: inv.Number}
	} else if err != nil {
		return fmt.Errorf("unable to create invoice %v, cause %w", inv.Number, err)
	}
	inv.CreatedAt = now
	return nil
}
