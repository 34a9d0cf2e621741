package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gren-95/FinanceFlux/internal/logutil"
	"github.com/cespare/xxhash/v2"
)

const (
	LockoutThreshold = 5
	LockoutWindow    = 10 * time.Minute
	LockoutDuration  = 15 * time.Minute
)

type (
	// PasswordVerifier is the part of the Hasher needed to sign in.
	PasswordVerifier interface {
		Verify(password, stored string) bool
	}

	// decoyHasher is implemented by verifiers that can also produce hashes,
	// unknown emails are then checked against a throwaway hash so they cost
	// as much as a known one.
	decoyHasher interface {
		Hash(password string) (string, error)
	}

	Authenticator struct {
		users    Users
		verifier PasswordVerifier
		now      func() time.Time
		stripes  stripes

		decoyOnce sync.Once
		decoy     string
	}

	Option func(*Authenticator)

	// stripes serializes attempts on the same email inside this process,
	// stores implementing AtomicUsers take care of other processes.
	stripes [64]sync.Mutex
)

// WithClock replaces time.Now. Every attempt reads the clock exactly once.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

func NewAuthenticator(users Users, verifier PasswordVerifier, opts ...Option) *Authenticator {
	a := &Authenticator{
		users:    users,
		verifier: verifier,
		now:      time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Authenticate checks email and password and applies the lockout policy.
// It never returns an error; every failure is described by the Result.
//
// The password is verified before any store transaction starts, the
// transaction only re-reads the record and writes the new auth fields.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) Result {
	log := logutil.GetOrDefault(ctx)

	mu := a.stripes.of(email)
	mu.Lock()
	defer mu.Unlock()

	res, err := a.attempt(ctx, email, password)
	if err != nil {
		log.Error().Err(err).Msg("Authentication aborted by a backend failure")
		return failed(BackendFault)
	}
	return res
}

func (a *Authenticator) attempt(ctx context.Context, email, password string) (Result, error) {
	log := logutil.GetOrDefault(ctx)
	// stored timestamps have millisecond precision
	now := time.UnixMilli(a.now().UnixMilli())

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("unable to lookup user, cause %w", err)
	}
	if user == nil {
		a.verifyDecoy(password)
		log.Debug().Msg("Sign-in for unknown email")
		return failed(InvalidCredentials), nil
	}
	log = log.With().Int64("user.id", user.ID).Logger()
	if user.LockedAt(now) {
		log.Debug().Time("user.locked_until", *user.LockedUntil).Msg("Sign-in refused, account is locked")
		return failed(AccountLocked), nil
	}

	matched := a.verifier.Verify(password, user.PasswordHash)

	var res Result
	err = a.atomically(ctx, func(ctx context.Context, users Users) error {
		var err error
		res, err = record(ctx, users, user, matched, now)
		return err
	})
	return res, err
}

// record applies the verdict on the password to the current state of the
// account, which might have changed since it was verified.
func record(ctx context.Context, users Users, verified *User, matched bool, now time.Time) (Result, error) {
	log := logutil.GetOrDefault(ctx).With().Int64("user.id", verified.ID).Logger()

	user, err := users.GetByEmail(ctx, verified.Email)
	if err != nil {
		return Result{}, fmt.Errorf("unable to reload user %v, cause %w", verified.ID, err)
	}
	if user == nil || user.ID != verified.ID || user.PasswordHash != verified.PasswordHash {
		log.Debug().Msg("Sign-in refused, account changed while verifying")
		return failed(InvalidCredentials), nil
	}
	if user.LockedAt(now) {
		log.Debug().Time("user.locked_until", *user.LockedUntil).Msg("Sign-in refused, account is locked")
		return failed(AccountLocked), nil
	}

	if matched {
		if err := users.UpdateAuthFields(ctx, user.ID, AuthFields{}); err != nil {
			return Result{}, fmt.Errorf("unable to reset failed attempts of user %v, cause %w", user.ID, err)
		}
		log.Debug().Msg("Sign-in accepted")
		return succeeded(user.Public()), nil
	}

	next := NextFailure(user.Fields(), now)
	if err := users.UpdateAuthFields(ctx, user.ID, next); err != nil {
		return Result{}, fmt.Errorf("unable to record failed attempt of user %v, cause %w", user.ID, err)
	}
	if next.LockedUntil != nil {
		log.Info().Int("user.failed_attempts", next.FailedAttempts).Msg("Account locked after repeated failures")
		return failed(AccountLocked), nil
	}
	log.Debug().Int("user.failed_attempts", next.FailedAttempts).Msg("Sign-in refused, wrong password")
	return failed(InvalidCredentials), nil
}

func (a *Authenticator) atomically(ctx context.Context, fn func(context.Context, Users) error) error {
	if atomic, ok := a.users.(AtomicUsers); ok {
		return atomic.Atomically(ctx, fn)
	}
	return fn(ctx, a.users)
}

// verifyDecoy spends the same work as a real verification and throws the
// answer away.
func (a *Authenticator) verifyDecoy(password string) {
	a.decoyOnce.Do(func() {
		if h, ok := a.verifier.(decoyHasher); ok {
			a.decoy, _ = h.Hash("financeflux-decoy-password")
		}
	})
	if a.decoy != "" {
		a.verifier.Verify(password, a.decoy)
	}
}

// NextFailure computes the auth fields after a wrong password at now.
//
// The counter always grows. The lock is applied once the counter reaches
// LockoutThreshold and the previous failure (not the one being recorded) is
// missing or newer than now-LockoutWindow.
func NextFailure(prev AuthFields, now time.Time) AuthFields {
	count := prev.FailedAttempts
	if count < 0 {
		count = 0
	}
	failedAt := now
	next := AuthFields{
		FailedAttempts:    count + 1,
		LastFailedAttempt: &failedAt,
	}
	if next.FailedAttempts >= LockoutThreshold &&
		(prev.LastFailedAttempt == nil || prev.LastFailedAttempt.After(now.Add(-LockoutWindow))) {
		until := now.Add(LockoutDuration)
		next.LockedUntil = &until
	}
	return next
}

func (s *stripes) of(email string) *sync.Mutex {
	return &s[xxhash.Sum64String(email)%uint64(len(s))]
}
