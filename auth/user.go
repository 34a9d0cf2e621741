package auth

import (
	"context"
	"time"
)

type (
	// User is the persisted account record.
	User struct {
		ID                int64
		Email             string
		PasswordHash      string
		FailedAttempts    int
		LastFailedAttempt *time.Time
		LockedUntil       *time.Time
	}

	// AuthFields are the columns Authenticate is allowed to change.
	AuthFields struct {
		FailedAttempts    int
		LastFailedAttempt *time.Time
		LockedUntil       *time.Time
	}

	// PublicUser is what leaves the package after a successful sign-in.
	PublicUser struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}

	// Users is the storage contract of the Authenticator.
	//
	// GetByEmail returns (nil, nil) when no account uses the given email.
	Users interface {
		GetByEmail(ctx context.Context, email string) (*User, error)
		UpdateAuthFields(ctx context.Context, id int64, fields AuthFields) error
	}

	// AtomicUsers is implemented by stores that can run a lookup followed by
	// an update as a single unit, so concurrent failures on the same account
	// cannot both read the same counter.
	AtomicUsers interface {
		Users
		Atomically(ctx context.Context, fn func(ctx context.Context, users Users) error) error
	}
)

// LockedAt reports whether the account refuses sign-ins at the given instant.
func (u *User) LockedAt(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// Fields returns the current auth fields of the record.
func (u *User) Fields() AuthFields {
	return AuthFields{
		FailedAttempts:    u.FailedAttempts,
		LastFailedAttempt: u.LastFailedAttempt,
		LockedUntil:       u.LockedUntil,
	}
}

// Public returns the minimal projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email}
}
