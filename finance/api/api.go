// Package api exposes customers and invoices over HTTP. Every route is
// mounted behind the security realm.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gren-95/FinanceFlux/finance"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/internal/render"
	"github.com/Gren-95/FinanceFlux/ledger"
	"github.com/julienschmidt/httprouter"
)

type (
	// Books is the storage the handlers need, *ledger.Ledger implements it.
	Books interface {
		ListCustomers(ctx context.Context) ([]finance.Customer, error)
		GetCustomer(ctx context.Context, id int64) (*finance.Customer, error)
		CreateCustomer(ctx context.Context, c *finance.Customer) error
		UpdateCustomer(ctx context.Context, c *finance.Customer) error
		DeleteCustomer(ctx context.Context, id int64) error

		ListInvoices(ctx context.Context) ([]finance.Invoice, error)
		GetInvoice(ctx context.Context, id int64) (*finance.Invoice, error)
		CreateInvoice(ctx context.Context, inv *finance.Invoice) error
	}

	// Guard wraps the handlers that require an authenticated user.
	Guard func(http.Handler) http.Handler

	Handler struct {
		books Books
	}

	errorBody struct {
		Error string `json:"error"`
	}
)

const maxBody = 1 << 20

var _ Books = (*ledger.Ledger)(nil)

func New(books Books) *Handler {
	return &Handler{books: books}
}

// Mount registers every finance route on router, each wrapped by guard.
func (h *Handler) Mount(router *httprouter.Router, guard Guard) {
	route := func(method, path string, fn http.HandlerFunc) {
		router.Handler(method, path, guard(fn))
	}
	route(http.MethodGet, "/customers", h.ListCustomers)
	route(http.MethodPost, "/customers", h.CreateCustomer)
	route(http.MethodGet, "/customers/:id", h.GetCustomer)
	route(http.MethodPut, "/customers/:id", h.UpdateCustomer)
	route(http.MethodDelete, "/customers/:id", h.DeleteCustomer)

	route(http.MethodGet, "/invoices", h.ListInvoices)
	route(http.MethodPost, "/invoices", h.CreateInvoice)
	route(http.MethodGet, "/invoices/:id", h.GetInvoice)
	route(http.MethodPost, "/invoices-sum", h.InvoiceSum)
}

func idParam(r *http.Request) (int64, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, finance.InvalidField{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// wantsJSON tells if the response should be JSON rather than a page.
func wantsJSON(r *http.Request) bool {
	return isJSONBody(r) || render.WantsMachineReadable(r)
}

func decodeJSON(r *http.Request, out interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(out)
	if err != nil {
		return finance.InvalidField{Field: "body", Reason: "is not valid JSON"}
	}
	return nil
}

func formFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, finance.InvalidField{Field: name, Reason: "is not a number"}
	}
	return v, nil
}

// fail maps err to a status code. Anything unexpected is logged and hidden
// behind a 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var (
		invalid       finance.InvalidField
		noCustomer    ledger.CustomerNotFound
		noInvoice     ledger.InvoiceNotFound
		duplicate     ledger.DuplicateInvoice
		status        int
		publicMessage string
	)
	switch {
	case errors.As(err, &invalid):
		status, publicMessage = http.StatusBadRequest, invalid.Error()
	case errors.As(err, &noCustomer):
		status, publicMessage = http.StatusNotFound, noCustomer.Error()
	case errors.As(err, &noInvoice):
		status, publicMessage = http.StatusNotFound, noInvoice.Error()
	case errors.As(err, &duplicate):
		status, publicMessage = http.StatusConflict, duplicate.Error()
	default:
		log := logutil.GetOrDefault(ctx)
		log.Error().Err(err).Str("http.path", r.URL.Path).Msg("Request failed")
		status, publicMessage = http.StatusInternalServerError, "Internal server error"
	}
	if wantsJSON(r) {
		render.JSON(ctx, w, status, errorBody{Error: publicMessage})
		return
	}
	render.HTML(ctx, w, status, errorPage, errorBody{Error: publicMessage})
}
