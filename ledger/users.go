package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Gren-95/FinanceFlux/auth"
	"github.com/cespare/xxhash/v2"
)

type (
	// userTable implements auth.Users on top of a connection or a transaction.
	userTable struct {
		q dbtx
	}
)

var _ auth.AtomicUsers = (*Ledger)(nil)

func emailHash(email string) int64 {
	return int64(xxhash.Sum64String(email))
}

func (u userTable) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	var lastFailed, lockedUntil sql.NullInt64
	err := u.q.QueryRowContext(ctx, `select id, email, password_hash, failed_attempts, last_failed_attempt, locked_until
	from users where email_hash64 = ? and email = ?`, emailHash(email), email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FailedAttempts, &lastFailed, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to load user, cause %w", err)
	}
	user.LastFailedAttempt = fromMillis(lastFailed)
	user.LockedUntil = fromMillis(lockedUntil)
	return &user, nil
}

func (u userTable) UpdateAuthFields(ctx context.Context, id int64, fields auth.AuthFields) error {
	res, err := u.q.ExecContext(ctx, `update users set failed_attempts = ?, last_failed_attempt = ?, locked_until = ? where id = ?`,
		fields.FailedAttempts, millis(fields.LastFailedAttempt), millis(fields.LockedUntil), id)
	if err != nil {
		return fmt.Errorf("unable to update auth fields of user %v, cause %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to update auth fields of user %v, cause %w", id, err)
	} else if n != 1 {
		return fmt.Errorf("unable to update auth fields of user %v, cause user vanished", id)
	}
	return nil
}

func (l *Ledger) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return userTable{q: l.db}.GetByEmail(ctx, email)
}

func (l *Ledger) UpdateAuthFields(ctx context.Context, id int64, fields auth.AuthFields) error {
	return userTable{q: l.db}.UpdateAuthFields(ctx, id, fields)
}

// Atomically runs fn inside an immediate transaction, any lookup and update
// done through the given Users happen as a single unit.
func (l *Ledger) Atomically(ctx context.Context, fn func(context.Context, auth.Users) error) error {
	return l.withTx(ctx, func(tx dbtx) error {
		return fn(ctx, userTable{q: tx})
	})
}

// CreateUser stores a new account. The email is trimmed but otherwise kept
// as given, lookups are exact.
func (l *Ledger) CreateUser(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("unable to create user, cause empty email")
	}
	var id int64
	err := l.db.QueryRowContext(ctx, `insert into users(email, email_hash64, password_hash) values (?, ?, ?) returning id`,
		email, emailHash(email), passwordHash).Scan(&id)
	if isUniqueViolation(err) {
		return nil, EmailInUse{Email: email}
	} else if err != nil {
		return nil, fmt.Errorf("unable to create user %v, cause %w", email, err)
	}
	return &auth.User{ID: id, Email: email, PasswordHash: passwordHash}, nil
}

// Unlock clears the failed attempts and any lock of the given account.
func (l *Ledger) Unlock(ctx context.Context, email string) error {
	res, err := l.db.ExecContext(ctx, `update users set failed_attempts = 0, last_failed_attempt = null, locked_until = null
	where email_hash64 = ? and email = ?`, emailHash(email), email)
	if err != nil {
		return fmt.Errorf("unable to unlock user %v, cause %w", email, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to unlock user %v, cause %w", email, err)
	} else if n == 0 {
		return UserNotFound{Email: email}
	}
	return nil
}
