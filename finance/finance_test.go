package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	for _, tc := range []struct {
		price, qty, vat float64
		want            float64
	}{
		{100, 2, 20, 240},
		{0.1, 3, 0, 0.3},
		{19.99, 3, 22, 73.16},
		{10, 1, 100, 20},
		{0, 5, 20, 0},
	} {
		assert.Equal(t, tc.want, Sum(tc.price, tc.qty, tc.vat), "%+v", tc)
	}
}

func TestInvoiceValidate(t *testing.T) {
	valid := Invoice{Number: " INV-1 ", Date: "2024-01-31", Quantity: 1, Price: 5, VATPercentage: 20, Currency: " usd "}
	valid.Normalize()
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "INV-1", valid.Number)
	assert.Equal(t, "USD", valid.Currency)
	assert.Equal(t, 6.0, valid.Sum)

	for field, inv := range map[string]Invoice{
		"invoiceNumber": {Quantity: 1},
		"quantity":      {Number: "A"},
		"price":         {Number: "A", Quantity: 1, Price: -1},
		"vatPercentage": {Number: "A", Quantity: 1, VATPercentage: 101},
		"date":          {Number: "A", Quantity: 1, Date: "31/01/2024"},
	} {
		var invalid InvalidField
		err := inv.Validate()
		if assert.True(t, errors.As(err, &invalid), field) {
			assert.Equal(t, field, invalid.Field)
		}
	}

	for field, inv := range map[string]Invoice{
		"quantity":      {Number: "A", Quantity: math.NaN(), Price: 1},
		"price":         {Number: "A", Quantity: 1, Price: math.Inf(1)},
		"vatPercentage": {Number: "A", Quantity: 1, Price: 1, VATPercentage: math.NaN()},
		"sum":           {Number: "A", Quantity: 10, Price: 1e308},
	} {
		var invalid InvalidField
		err := inv.Validate()
		if assert.True(t, errors.As(err, &invalid), field) {
			assert.Equal(t, field, invalid.Field)
		}
	}
}

func TestCustomerValidate(t *testing.T) {
	c := Customer{Name: "  ", Email: "x@y"}
	c.Normalize()
	assert.Error(t, c.Validate())

	c = Customer{Name: "Acme", Email: "not-an-email"}
	assert.Error(t, c.Validate())

	c = Customer{Name: "Acme"}
	assert.NoError(t, c.Validate())
}

func TestSumOf(t *testing.T) {
	sum, err := SumOf(100, 2, 20)
	assert.NoError(t, err)
	assert.Equal(t, 240.0, sum)

	for _, in := range [][3]float64{
		{math.Inf(1), 1, 0},
		{1, math.NaN(), 0},
		{1, 1, math.Inf(-1)},
		{1e308, 10, 0},
	} {
		_, err := SumOf(in[0], in[1], in[2])
		var invalid InvalidField
		assert.True(t, errors.As(err, &invalid), "%v", in)
	}
}
