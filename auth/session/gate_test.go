package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	fresh := &Session{Authenticated: true, UserID: 1, Email: "alice@example.com", LastActivity: now.Add(-29 * time.Minute)}
	d := RequireAuth(fresh, now, false)
	assert.Equal(t, Decision{Allow: true}, d)
	assert.Equal(t, now, fresh.LastActivity)
	assert.True(t, fresh.Authenticated)

	idle := &Session{Authenticated: true, UserID: 1, Email: "alice@example.com", LastActivity: now.Add(-31 * time.Minute)}
	d = RequireAuth(idle, now, false)
	assert.Equal(t, Decision{Challenge: SignInPage}, d)
	assert.False(t, idle.Authenticated)
	assert.Equal(t, now.Add(-31*time.Minute), idle.LastActivity)

	edge := &Session{Authenticated: true, LastActivity: now.Add(-InactivityTimeout)}
	assert.True(t, RequireAuth(edge, now, false).Allow)
}

func TestRequireAuthChallengeKind(t *testing.T) {
	now := time.Now()
	assert.Equal(t, Unauthorized, RequireAuth(&Session{}, now, true).Challenge)
	assert.Equal(t, SignInPage, RequireAuth(&Session{}, now, false).Challenge)
	assert.Equal(t, Unauthorized, RequireAuth(nil, now, true).Challenge)
}

func TestSignIn(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &Session{ReturnTo: "/invoices/3"}
	returnTo := s.SignIn(9, "bob@example.com", now)
	assert.Equal(t, "/invoices/3", returnTo)
	assert.Equal(t, Session{Authenticated: true, UserID: 9, Email: "bob@example.com", LastActivity: now}, *s)
	assert.True(t, s.Active(now.Add(InactivityTimeout)))
	assert.False(t, s.Active(now.Add(InactivityTimeout+time.Second)))
}
