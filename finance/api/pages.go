package api

import "github.com/Gren-95/FinanceFlux/internal/render"

var (
	errorPage = render.Layout("error", `<p class="error" role="alert">{{.Error}}</p>`)

	customersPage = render.Layout("customers", `
<h1>Customers</h1>
<table>
<tr><th>Name</th><th>Email</th><th>Address</th></tr>
{{range .}}<tr><td><a href="/customers/{{.ID}}">{{.Name}}</a></td><td>{{.Email}}</td><td>{{.Address}}</td></tr>
{{else}}<tr><td colspan="3">No customers yet</td></tr>
{{end}}</table>
<form method="post" action="/customers">
<input name="name" placeholder="Name" required>
<input name="email" type="email" placeholder="Email">
<input name="address" placeholder="Address">
<button type="submit">Add customer</button>
</form>
`)

	customerPage = render.Layout("customer", `
<h1>{{.Name}}</h1>
<dl>
<dt>Email</dt><dd>{{.Email}}</dd>
<dt>Address</dt><dd>{{.Address}}</dd>
<dt>Since</dt><dd>{{.CreatedAt.Format "2006-01-02"}}</dd>
</dl>
`)

	invoicesPage = render.Layout("invoices", `
<h1>Invoices</h1>
<table>
<tr><th>Number</th><th>Date</th><th>Description</th><th>Sum</th></tr>
{{range .}}<tr><td><a href="/invoices/{{.ID}}">{{.Number}}</a></td><td>{{.Date}}</td><td>{{.Description}}</td><td>{{printf "%.2f" .Sum}} {{.Currency}}</td></tr>
{{else}}<tr><td colspan="4">No invoices yet</td></tr>
{{end}}</table>
<form method="post" action="/invoices">
<input name="invoiceNumber" placeholder="Number" required>
<input name="date" type="date">
<input name="description" placeholder="Description">
<input name="quantity" type="number" step="any" placeholder="Quantity" required>
<input name="price" type="number" step="any" placeholder="Price" required>
<input name="vatPercentage" type="number" step="any" placeholder="VAT %">
<input name="paymentMethod" placeholder="Payment method">
<input name="currency" placeholder="Currency">
<input name="customerId" type="number" placeholder="Customer id">
<button type="submit">Add invoice</button>
</form>
`)

	invoicePage = render.Layout("invoice", `
<h1>Invoice {{.Number}}</h1>
<dl>
<dt>Date</dt><dd>{{.Date}}</dd>
<dt>Description</dt><dd>{{.Description}}</dd>
<dt>Quantity</dt><dd>{{.Quantity}}</dd>
<dt>Price</dt><dd>{{printf "%.2f" .Price}}</dd>
<dt>VAT</dt><dd>{{.VATPercentage}}%</dd>
<dt>Payment method</dt><dd>{{.PaymentMethod}}</dd>
<dt>Sum</dt><dd>{{printf "%.2f" .Sum}} {{.Currency}}</dd>
</dl>
`)
)
