package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gren-95/FinanceFlux/internal/testutil"
	"github.com/julienschmidt/httprouter"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func openGuard(h http.Handler) http.Handler { return h }

func acquireHandler(ctx context.Context, t *testing.T) (http.Handler, func()) {
	books, cleanup := testutil.AcquireLedger(ctx, t, "finance-api")
	router := httprouter.New()
	New(books).Mount(router, openGuard)
	return router, cleanup
}

func TestCustomersAPI(t *testing.T) {
	ctx := context.Background()
	handler, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	apitest.Handler(handler).
		Get("/customers").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()

	apitest.Handler(handler).
		Post("/customers").
		JSON(`{"name":" Acme ","email":"billing@acme.test","address":"1 Road"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.id", float64(1))).
		Assert(jsonpath.Equal("$.name", "Acme")).
		End()

	apitest.Handler(handler).
		Post("/customers").
		JSON(`{"name":""}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"name is required"}`).
		End()

	apitest.Handler(handler).
		Put("/customers/1").
		JSON(`{"name":"Acme Ltd","email":"billing@acme.test"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.name", "Acme Ltd")).
		End()

	apitest.Handler(handler).
		Get("/customers/1").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.name", "Acme Ltd")).
		Assert(jsonpath.Equal("$.address", "")).
		End()

	apitest.Handler(handler).
		Get("/customers/1").
		Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "text/html; charset=utf-8").
		End()

	apitest.Handler(handler).
		Delete("/customers/1").
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.Handler(handler).
		Get("/customers/1").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"customer 1 not found"}`).
		End()

	apitest.Handler(handler).
		Get("/customers/abc").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestInvoicesAPI(t *testing.T) {
	ctx := context.Background()
	handler, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/invoices").
		JSON(`{"invoiceNumber":"INV-1","date":"2024-01-10","quantity":2,"price":100,"vatPercentage":20,"currency":"eur"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.sum", float64(240))).
		Assert(jsonpath.Equal("$.currency", "EUR")).
		End()

	apitest.Handler(handler).
		Post("/invoices").
		JSON(`{"invoiceNumber":"INV-1","quantity":1,"price":1}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	apitest.Handler(handler).
		Post("/invoices").
		JSON(`{"invoiceNumber":"INV-2","quantity":1,"price":1,"customerId":42}`).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(handler).
		Post("/invoices").
		JSON(`{"invoiceNumber":"INV-3","quantity":0,"price":1}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"quantity must be greater than zero"}`).
		End()

	apitest.Handler(handler).
		Post("/invoices").
		FormData("invoiceNumber", "INV-4").
		FormData("quantity", "3").
		FormData("price", "10").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/invoices/2").
		End()

	apitest.Handler(handler).
		Get("/invoices/2").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.invoiceNumber", "INV-4")).
		Assert(jsonpath.Equal("$.sum", float64(30))).
		End()

	apitest.Handler(handler).
		Get("/invoices").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 2)).
		End()

	apitest.Handler(handler).
		Get("/invoices/99").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestInvoiceSum(t *testing.T) {
	ctx := context.Background()
	handler, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/invoices-sum").
		JSON(`{"price":100,"quantity":2,"vatPercentage":20}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"sum":240}`).
		End()

	apitest.Handler(handler).
		Post("/invoices-sum").
		JSON(`{"price":1e308,"quantity":10,"vatPercentage":0}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"sum is too large"}`).
		End()

	apitest.Handler(handler).
		Post("/invoices-sum").
		JSON(`not json`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestInvoiceFormRejectsNonFinite(t *testing.T) {
	ctx := context.Background()
	handler, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	for _, price := range []string{"Inf", "-Inf", "NaN", "1e309"} {
		apitest.Handler(handler).
			Post("/invoices").
			FormData("invoiceNumber", "INV-"+price).
			FormData("quantity", "1").
			FormData("price", price).
			Expect(t).
			Status(http.StatusBadRequest).
			End()
	}

	apitest.Handler(handler).
		Post("/invoices").
		FormData("invoiceNumber", "INV-BIG").
		FormData("quantity", "10").
		FormData("price", "1e308").
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.Handler(handler).
		Get("/invoices").
		Header("Accept", "application/json").
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}
