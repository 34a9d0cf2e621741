// Package session keeps per-browser sign-in state and decides, on every
// protected request, whether that state is still good enough.
package session

import (
	"time"
)

// InactivityTimeout is how long an authenticated session survives without
// passing the gate.
const InactivityTimeout = 30 * time.Minute

type (
	Session struct {
		Authenticated bool      `json:"authenticated"`
		UserID        int64     `json:"userId,omitempty"`
		Email         string    `json:"email,omitempty"`
		LastActivity  time.Time `json:"lastActivity"`
		ReturnTo      string    `json:"returnTo,omitempty"`
	}
)

// SignIn marks s as authenticated for the given user and returns the
// page the user was trying to reach, if any.
func (s *Session) SignIn(userID int64, email string, now time.Time) (returnTo string) {
	returnTo = s.ReturnTo
	*s = Session{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
		LastActivity:  now,
	}
	return returnTo
}

// Active reports whether s is authenticated and not idle for longer than
// InactivityTimeout. It does not change s.
func (s *Session) Active(now time.Time) bool {
	if s == nil || !s.Authenticated {
		return false
	}
	return now.Sub(s.LastActivity) <= InactivityTimeout
}
