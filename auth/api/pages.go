package api

import "github.com/Gren-95/FinanceFlux/internal/render"

type (
	signInView struct {
		Message string
		Email   string
	}
)

var signInPage = render.Layout("signin", `
<section class="signin">
<h1>Sign In</h1>
{{if .Message}}<p class="error" role="alert">{{.Message}}</p>{{end}}
<form method="post" action="/api/auth/signin">
<label for="email">Email</label>
<input id="email" type="email" name="email" value="{{.Email}}" autocomplete="username" required>
<label for="password">Password</label>
<input id="password" type="password" name="password" autocomplete="current-password" required>
<button type="submit">Sign In</button>
</form>
</section>
`)
