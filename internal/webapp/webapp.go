// Package webapp puts the realm, the finance handlers and the home page
// together behind a single http.Handler.
package webapp

import (
	"context"
	"net/http"
	"time"

	authapi "github.com/Gren-95/FinanceFlux/auth/api"
	financeapi "github.com/Gren-95/FinanceFlux/finance/api"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/internal/render"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

type (
	statusRecorder struct {
		http.ResponseWriter
		status int
		size   int
	}

	homeView struct {
		Email string
	}
)

var homePage = render.Layout("home", `
<h1>Welcome, {{.Email}}</h1>
<ul>
<li><a href="/invoices">Invoices</a></li>
<li><a href="/customers">Customers</a></li>
</ul>
<form method="post" action="/api/auth/signout"><button type="submit">Sign out</button></form>
`)

// New returns the application handler. The logger from ctx is attached to
// every request.
func New(ctx context.Context, realm *authapi.SecurityRealm, books financeapi.Books) http.Handler {
	router := httprouter.New()
	realm.Mount(router)
	financeapi.New(books).Mount(router, realm.Protect)
	router.Handler(http.MethodGet, "/", realm.Protect(http.HandlerFunc(home)))
	router.PanicHandler = recovered

	return withAccessLog(logutil.GetOrDefault(ctx), router)
}

func home(w http.ResponseWriter, r *http.Request) {
	var view homeView
	if u := authapi.CurrentUser(r.Context()); u != nil {
		view.Email = u.Email
	}
	render.HTML(r.Context(), w, http.StatusOK, homePage, view)
}

func recovered(w http.ResponseWriter, r *http.Request, v interface{}) {
	log := logutil.GetOrDefault(r.Context())
	log.Error().Interface("panic", v).Str("http.path", r.URL.Path).Msg("Handler panic")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func withAccessLog(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := logutil.WithLogger(r.Context(), log)
		next.ServeHTTP(rec, r.WithContext(ctx))
		log.Info().
			Str("http.method", r.Method).
			Str("http.path", r.URL.Path).
			Int("http.status", rec.status).
			Int("http.size", rec.size).
			Dur("http.elapsed", time.Since(start)).
			Msg("Request served")
	})
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(buf []byte) (int, error) {
	n, err := s.ResponseWriter.Write(buf)
	s.size += n
	return n, err
}
