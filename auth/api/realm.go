package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Gren-95/FinanceFlux/auth"
	"github.com/Gren-95/FinanceFlux/auth/session"
	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/Gren-95/FinanceFlux/internal/render"
)

type (
	Authenticator interface {
		Authenticate(ctx context.Context, email, password string) auth.Result
	}

	SecurityRealm struct {
		authn          Authenticator
		sessions       session.Store
		now            func() time.Time
		insecureCookie bool
	}

	RealmOption func(*SecurityRealm)

	userKey byte
)

// CookieName is the cookie carrying the session id.
const CookieName = "session"

var (
	currentUserKey = userKey(1)
)

// Clock replaces time.Now for session timestamps.
func Clock(now func() time.Time) RealmOption {
	return func(s *SecurityRealm) {
		s.now = now
	}
}

func NewRealm(authn Authenticator, sessions session.Store, allowHTTPCookie bool, opts ...RealmOption) *SecurityRealm {
	s := &SecurityRealm{
		authn:          authn,
		sessions:       sessions,
		now:            time.Now,
		insecureCookie: allowHTTPCookie,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CurrentUser returns the user that passed Protect, nil outside protected
// handlers.
func CurrentUser(ctx context.Context) *auth.PublicUser {
	u, _ := ctx.Value(currentUserKey).(*auth.PublicUser)
	return u
}

// Protect lets requests with an active session reach sensitive. Page
// requests without one get the sign-in form, script requests a 401.
func (s *SecurityRealm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, sess := s.loadSession(r)
		decision := session.RequireAuth(sess, s.now(), render.WantsMachineReadable(r))
		if decision.Allow {
			s.storeSession(w, r, id, sess)
			user := &auth.PublicUser{ID: sess.UserID, Email: sess.Email}
			sensitive.ServeHTTP(w, r.WithContext(context.WithValue(ctx, currentUserKey, user)))
			return
		}
		switch decision.Challenge {
		case session.Unauthorized:
			if id != "" {
				// persist the de-authentication of an idle session
				s.storeSession(w, r, id, sess)
			}
			render.JSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		default:
			if r.Method == http.MethodGet {
				sess.ReturnTo = r.URL.RequestURI()
			}
			s.storeSession(w, r, id, sess)
			render.HTML(ctx, w, http.StatusOK, signInPage, signInView{})
		}
	})
}

// loadSession never fails: a missing or unreadable session is an empty one
// and id is empty when a new one must be issued.
func (s *SecurityRealm) loadSession(r *http.Request) (string, *session.Session) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", &session.Session{}
	}
	sess, err := s.sessions.Load(r.Context(), cookie.Value)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Warn().Err(err).Msg("Unable to load session, starting a new one")
		return "", &session.Session{}
	}
	if sess == nil {
		return "", &session.Session{}
	}
	return cookie.Value, sess
}

// storeSession saves sess under id (issuing an id when empty) and refreshes
// the cookie.
func (s *SecurityRealm) storeSession(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) string {
	if id == "" {
		id = s.sessions.NewID()
	}
	if err := s.sessions.Save(r.Context(), id, sess); err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to save session")
	}
	http.SetCookie(w, s.cookie(id, int(session.InactivityTimeout/time.Second)))
	return id
}

func (s *SecurityRealm) cookie(id string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !s.insecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
