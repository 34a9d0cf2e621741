package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gren-95/FinanceFlux/finance"
	"github.com/Gren-95/FinanceFlux/internal/render"
)

type (
	sumRequest struct {
		Price         float64 `json:"price"`
		Quantity      float64 `json:"quantity"`
		VATPercentage float64 `json:"vatPercentage"`
	}

	sumResponse struct {
		Sum float64 `json:"sum"`
	}
)

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.books.ListInvoices(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	if invoices == nil {
		invoices = []finance.Invoice{}
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusOK, invoices)
		return
	}
	render.HTML(r.Context(), w, http.StatusOK, invoicesPage, invoices)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	inv, err := h.books.GetInvoice(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusOK, inv)
		return
	}
	render.HTML(r.Context(), w, http.StatusOK, invoicePage, inv)
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := readInvoice(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.books.CreateInvoice(r.Context(), &inv); err != nil {
		fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusCreated, inv)
		return
	}
	http.Redirect(w, r, "/invoices/"+strconv.FormatInt(inv.ID, 10), http.StatusSeeOther)
}

// InvoiceSum computes the total of an invoice line without storing anything.
func (h *Handler) InvoiceSum(w http.ResponseWriter, r *http.Request) {
	var req sumRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	sum, err := finance.SumOf(req.Price, req.Quantity, req.VATPercentage)
	if err != nil {
		fail(w, r, err)
		return
	}
	render.JSON(r.Context(), w, http.StatusOK, sumResponse{Sum: sum})
}

func readInvoice(r *http.Request) (finance.Invoice, error) {
	var inv finance.Invoice
	if isJSONBody(r) {
		if err := decodeJSON(r, &inv); err != nil {
			return inv, err
		}
	} else if err := readInvoiceForm(r, &inv); err != nil {
		return inv, err
	}
	inv.Normalize()
	return inv, inv.Validate()
}

func readInvoiceForm(r *http.Request, inv *finance.Invoice) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		return finance.InvalidField{Field: "body", Reason: "is not a valid form"}
	}
	inv.Number = r.PostFormValue("invoiceNumber")
	inv.Date = r.PostFormValue("date")
	inv.Description = r.PostFormValue("description")
	inv.PaymentMethod = r.PostFormValue("paymentMethod")
	inv.Currency = r.PostFormValue("currency")

	var err error
	if inv.Quantity, err = formFloat(r, "quantity"); err != nil {
		return err
	}
	if inv.Price, err = formFloat(r, "price"); err != nil {
		return err
	}
	if inv.VATPercentage, err = formFloat(r, "vatPercentage"); err != nil {
		return err
	}
	if raw := strings.TrimSpace(r.PostFormValue("customerId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return finance.InvalidField{Field: "customerId", Reason: "is not a valid id"}
		}
		inv.CustomerID = &id
	}
	return nil
}
