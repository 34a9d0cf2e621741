package api

import (
	"net/http"

	"github.com/Gren-95/FinanceFlux/finance"
	"github.com/Gren-95/FinanceFlux/internal/render"
)

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.books.ListCustomers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	if customers == nil {
		customers = []finance.Customer{}
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusOK, customers)
		return
	}
	render.HTML(r.Context(), w, http.StatusOK, customersPage, customers)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	c, err := h.books.GetCustomer(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusOK, c)
		return
	}
	render.HTML(r.Context(), w, http.StatusOK, customerPage, c)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := readCustomer(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.books.CreateCustomer(r.Context(), &c); err != nil {
		fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		render.JSON(r.Context(), w, http.StatusCreated, c)
		return
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	c, err := readCustomer(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.ID = id
	if err := h.books.UpdateCustomer(r.Context(), &c); err != nil {
		fail(w, r, err)
		return
	}
	render.JSON(r.Context(), w, http.StatusOK, c)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.books.DeleteCustomer(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readCustomer decodes, normalizes and validates the request body.
func readCustomer(r *http.Request) (finance.Customer, error) {
	var c finance.Customer
	if isJSONBody(r) {
		if err := decodeJSON(r, &c); err != nil {
			return c, err
		}
	} else {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
		if err := r.ParseForm(); err != nil {
			return c, finance.InvalidField{Field: "body", Reason: "is not a valid form"}
		}
		c.Name = r.PostFormValue("name")
		c.Address = r.PostFormValue("address")
		c.Email = r.PostFormValue("email")
	}
	c.Normalize()
	return c, c.Validate()
}
