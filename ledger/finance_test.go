package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gren-95/FinanceFlux/finance"
	"github.com/Gren-95/FinanceFlux/internal/testutil"
	"github.com/Gren-95/FinanceFlux/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomers(t *testing.T) {
	ctx := context.Background()
	books, cleanup := testutil.AcquireLedger(ctx, t, "customers")
	defer cleanup()

	acme := finance.Customer{Name: "Acme", Email: "billing@acme.test", Address: "1 Road"}
	require.NoError(t, books.CreateCustomer(ctx, &acme))
	assert.NotZero(t, acme.ID)
	assert.False(t, acme.CreatedAt.IsZero())

	beta := finance.Customer{Name: "Beta"}
	require.NoError(t, books.CreateCustomer(ctx, &beta))

	list, err := books.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)

	acme.Address = "2 Road"
	require.NoError(t, books.UpdateCustomer(ctx, &acme))
	got, err := books.GetCustomer(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 Road", got.Address)

	require.NoError(t, books.DeleteCustomer(ctx, beta.ID))
	var notFound ledger.CustomerNotFound
	_, err = books.GetCustomer(ctx, beta.ID)
	assert.True(t, errors.As(err, &notFound))
	assert.True(t, errors.As(books.DeleteCustomer(ctx, beta.ID), &notFound))
	ghost := finance.Customer{ID: beta.ID, Name: "Ghost"}
	assert.True(t, errors.As(books.UpdateCustomer(ctx, &ghost), &notFound))
}

func TestInvoices(t *testing.T) {
	ctx := context.Background()
	books, cleanup := testutil.AcquireLedger(ctx, t, "invoices")
	defer cleanup()

	acme := finance.Customer{Name: "Acme"}
	require.NoError(t, books.CreateCustomer(ctx, &acme))

	first := finance.Invoice{Number: "INV-1", Date: "2024-01-10", Quantity: 2, Price: 100, VATPercentage: 20, Currency: "eur", CustomerID: &acme.ID}
	first.Normalize()
	require.NoError(t, books.CreateInvoice(ctx, &first))
	second := finance.Invoice{Number: "INV-2", Date: "2024-02-01", Quantity: 1, Price: 10}
	second.Normalize()
	require.NoError(t, books.CreateInvoice(ctx, &second))

	got, err := books.GetInvoice(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 240.0, got.Sum)
	assert.Equal(t, "EUR", got.Currency)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, acme.ID, *got.CustomerID)

	list, err := books.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "INV-2", list[0].Number, "newest first")
	assert.Nil(t, list[0].CustomerID)

	dup := finance.Invoice{Number: "INV-1", Quantity: 1}
	var duplicate ledger.DuplicateInvoice
	assert.True(t, errors.As(books.CreateInvoice(ctx, &dup), &duplicate))

	stranger := int64(999)
	orphan := finance.Invoice{Number: "INV-3", Quantity: 1, CustomerID: &stranger}
	var noCustomer ledger.CustomerNotFound
	assert.True(t, errors.As(books.CreateInvoice(ctx, &orphan), &noCustomer))

	var noInvoice ledger.InvoiceNotFound
	_, err = books.GetInvoice(ctx, 999)
	assert.True(t, errors.As(err, &noInvoice))

	// deleting the customer keeps its invoices
	require.NoError(t, books.DeleteCustomer(ctx, acme.ID))
	got, err = books.GetInvoice(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)
}
