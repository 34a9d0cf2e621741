// Package finance holds the customer and invoice records and the little
// arithmetic they need.
package finance

import (
	"math"
	"strings"
	"time"
)

type (
	Customer struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Address   string    `json:"address"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Invoice struct {
		ID            int64     `json:"id"`
		Number        string    `json:"invoiceNumber"`
		Date          string    `json:"date"`
		Description   string    `json:"description"`
		Quantity      float64   `json:"quantity"`
		Price         float64   `json:"price"`
		VATPercentage float64   `json:"vatPercentage"`
		PaymentMethod string    `json:"paymentMethod"`
		Currency      string    `json:"currency"`
		CustomerID    *int64    `json:"customerId,omitempty"`
		Sum           float64   `json:"sum"`
		CreatedAt     time.Time `json:"createdAt"`
	}
)

const dateLayout = "2006-01-02"

// Sum is price*quantity plus VAT, rounded to cents.
func Sum(price, quantity, vatPercentage float64) float64 {
	net := price * quantity
	return math.Round(net*(1+vatPercentage/100)*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SumOf computes Sum and refuses inputs that do not give a finite amount.
func SumOf(price, quantity, vatPercentage float64) (float64, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{{"price", price}, {"quantity", quantity}, {"vatPercentage", vatPercentage}} {
		if !finite(f.v) {
			return 0, InvalidField{Field: f.name, Reason: "must be a finite number"}
		}
	}
	sum := Sum(price, quantity, vatPercentage)
	if !finite(sum) {
		return 0, InvalidField{Field: "sum", Reason: "is too large"}
	}
	return sum, nil
}

// Normalize trims the text fields in place.
func (c *Customer) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Email = strings.TrimSpace(c.Email)
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return InvalidField{Field: "name", Reason: "is required"}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return InvalidField{Field: "email", Reason: "is not an email address"}
	}
	return nil
}

// Normalize trims the text fields and recomputes Sum.
func (i *Invoice) Normalize() {
	i.Number = strings.TrimSpace(i.Number)
	i.Date = strings.TrimSpace(i.Date)
	i.Description = strings.TrimSpace(i.Description)
	i.PaymentMethod = strings.TrimSpace(i.PaymentMethod)
	i.Currency = strings.ToUpper(strings.TrimSpace(i.Currency))
	i.Sum = Sum(i.Price, i.Quantity, i.VATPercentage)
}

func (i *Invoice) Validate() error {
	switch {
	case !finite(i.Quantity):
		return InvalidField{Field: "quantity", Reason: "must be a finite number"}
	case !finite(i.Price):
		return InvalidField{Field: "price", Reason: "must be a finite number"}
	case !finite(i.VATPercentage):
		return InvalidField{Field: "vatPercentage", Reason: "must be a finite number"}
	case i.Number == "":
		return InvalidField{Field: "invoiceNumber", Reason: "is required"}
	case i.Quantity <= 0:
		return InvalidField{Field: "quantity", Reason: "must be greater than zero"}
	case i.Price < 0:
		return InvalidField{Field: "price", Reason: "cannot be negative"}
	case i.VATPercentage < 0 || i.VATPercentage > 100:
		return InvalidField{Field: "vatPercentage", Reason: "must be between 0 and 100"}
	case !finite(Sum(i.Price, i.Quantity, i.VATPercentage)):
		return InvalidField{Field: "sum", Reason: "is too large"}
	}
	if i.Date != "" {
		if _, err := time.Parse(dateLayout, i.Date); err != nil {
			return InvalidField{Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
		}
	}
	return nil
}
