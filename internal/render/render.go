// Package render writes JSON and HTML responses.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gren-95/FinanceFlux/internal/logutil"
)

// WantsMachineReadable reports whether r comes from script code (XHR/fetch)
// or an API client rather than a browser navigating to a page.
func WantsMachineReadable(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func JSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		log := logutil.GetOrDefault(ctx)
		log.Error().Err(err).Msg("Unable to encode response")
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	w.Write(buf)
}

// HTML renders tpl into memory first so a template failure can still turn
// into a proper 500.
func HTML(ctx context.Context, w http.ResponseWriter, status int, tpl *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		log := logutil.GetOrDefault(ctx)
		log.Error().Err(err).Str("template", tpl.Name()).Msg("Unable to render page")
		http.Error(w, "unable to render page, check logs for more information", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Layout wraps body in the shared page chrome and parses the result.
func Layout(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(layoutHead + body + layoutFoot))
}

const layoutHead = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>FinanceFlux</title></head>
<body>
<nav>
<a href="/">FinanceFlux</a>
<a href="/invoices">Invoices</a>
<a href="/customers">Customers</a>
</nav>
<main>
`

const layoutFoot = `
</main>
</body>
</html>
`
