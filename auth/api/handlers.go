package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Gren-95/FinanceFlux/auth"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/internal/render"
)

type (
	credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	signInResponse struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		ReturnTo string `json:"returnTo,omitempty"`
	}

	statusResponse struct {
		IsAuthenticated bool             `json:"isAuthenticated"`
		User            *auth.PublicUser `json:"user"`
	}
)

const (
	msgMissingCredentials = "Email and password are required"
	msgInvalidBody        = "Invalid request body"
	msgResetSent          = "If the email exists, password reset instructions have been sent"

	maxBody = 1 << 20
)

// SignIn handles POST /api/auth/signin with either a JSON or a form body.
func (s *SecurityRealm) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jsonBody := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	formSubmit := !jsonBody && !render.WantsMachineReadable(r)

	creds, err := readCredentials(r, jsonBody)
	if err != nil {
		if formSubmit {
			render.HTML(ctx, w, http.StatusBadRequest, signInPage, signInView{Message: msgInvalidBody})
			return
		}
		render.JSON(ctx, w, http.StatusBadRequest, signInResponse{Message: msgInvalidBody})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		if formSubmit {
			render.HTML(ctx, w, http.StatusBadRequest, signInPage, signInView{Message: msgMissingCredentials, Email: creds.Email})
			return
		}
		render.JSON(ctx, w, http.StatusBadRequest, signInResponse{Message: msgMissingCredentials})
		return
	}

	res := s.authn.Authenticate(ctx, creds.Email, creds.Password)
	if !res.Success {
		log := logutil.GetOrDefault(ctx)
		log.Info().Str("auth.outcome", res.Outcome.String()).Msg("Sign-in refused")
		if formSubmit {
			render.HTML(ctx, w, http.StatusUnauthorized, signInPage, signInView{Message: res.Message, Email: creds.Email})
			return
		}
		render.JSON(ctx, w, http.StatusUnauthorized, signInResponse{Message: res.Message})
		return
	}

	// never promote a pre-authentication id, issue a new one
	oldID, sess := s.loadSession(r)
	returnTo := safeReturnTo(sess.SignIn(res.User.ID, res.User.Email, s.now()))
	if oldID != "" {
		if err := s.sessions.Destroy(ctx, oldID); err != nil {
			log := logutil.GetOrDefault(ctx)
			log.Warn().Err(err).Msg("Unable to destroy previous session")
		}
	}
	s.storeSession(w, r, "", sess)

	if formSubmit {
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}
	render.JSON(ctx, w, http.StatusOK, signInResponse{Success: true, Message: res.Message, ReturnTo: returnTo})
}

// SignOut handles POST /api/auth/signout.
func (s *SecurityRealm) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Destroy(ctx, cookie.Value); err != nil {
			log := logutil.GetOrDefault(ctx)
			log.Error().Err(err).Msg("Unable to destroy session")
		}
	}
	http.SetCookie(w, s.cookie("", -1))
	if render.WantsMachineReadable(r) {
		render.JSON(ctx, w, http.StatusOK, map[string]bool{"success": true})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Status handles GET /api/auth/status. It reports without refreshing the
// session activity.
func (s *SecurityRealm) Status(w http.ResponseWriter, r *http.Request) {
	_, sess := s.loadSession(r)
	var resp statusResponse
	if sess.Active(s.now()) {
		resp.IsAuthenticated = true
		resp.User = &auth.PublicUser{ID: sess.UserID, Email: sess.Email}
	}
	render.JSON(r.Context(), w, http.StatusOK, resp)
}

// ForgotPassword answers POST /api/auth/forgot-password. Nothing is sent,
// the answer is the same whether the email exists or not.
func (s *SecurityRealm) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	io.Copy(io.Discard, io.LimitReader(r.Body, maxBody))
	render.JSON(r.Context(), w, http.StatusOK, signInResponse{Success: true, Message: msgResetSent})
}

// SignInForm serves the standalone sign-in page.
func (s *SecurityRealm) SignInForm(w http.ResponseWriter, r *http.Request) {
	render.HTML(r.Context(), w, http.StatusOK, signInPage, signInView{})
}

func readCredentials(r *http.Request, jsonBody bool) (credentials, error) {
	var c credentials
	if jsonBody {
		err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&c)
		if err != nil {
			return c, err
		}
	} else {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
		if err := r.ParseForm(); err != nil {
			return c, err
		}
		c.Email = r.PostFormValue("email")
		c.Password = r.PostFormValue("password")
	}
	c.Email = strings.TrimSpace(c.Email)
	return c, nil
}

// safeReturnTo only lets local absolute paths through.
func safeReturnTo(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
