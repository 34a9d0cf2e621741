// Package ledger is the SQLite storage of FinanceFlux: user accounts,
// customers and invoices all live in a single database file.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type (
	Ledger struct {
		db *sql.DB
	}

	// dbtx is satisfied by both *sql.DB and *sql.Tx
	dbtx interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}
)

// FileName is the name of the database file inside the ledger directory.
const FileName = "ledger.db"

func openLedgerDatabase(ctx context.Context, dir string) (*sql.DB, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("unable to create directory %v to store the ledger, cause %w", dir, err)
	}
	file := filepath.Join(dir, FileName)
	// _txlock=immediate makes every transaction take the write lock upfront,
	// two concurrent read-modify-write cycles cannot interleave
	connstr := fmt.Sprintf("file:%v?_journal=wal&_txlock=immediate&_busy_timeout=5000&_foreign_keys=on&mode=rwc", file)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping ledger %v, cause %w", file, err)
	}
	return conn, nil
}

// Open opens (or creates) the ledger stored under dir and makes sure the
// schema exists.
func Open(ctx context.Context, dir string) (*Ledger, error) {
	conn, err := openLedgerDatabase(ctx, dir)
	if err != nil {
		return nil, err
	}
	l := &Ledger{db: conn}
	err = l.init(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init ledger %v, cause %w", dir, err)
	}
	return l, nil
}

func (l *Ledger) init(ctx context.Context) error {
	for _, cmd := range []string{
		`create table if not exists users(
			id integer primary key autoincrement,
			email text not null unique,
			email_hash64 integer not null,
			password_hash text not null,
			failed_attempts integer not null default 0,
			last_failed_attempt integer,
			locked_until integer
		)`,
		`create index if not exists idx_users_email_hash64
			on users(email_hash64)
		`,
		`create table if not exists customers(
			id integer primary key autoincrement,
			name text not null,
			address text not null default '',
			email text not null default '',
			created_at integer not null
		)`,
		`create table if not exists invoices(
			id integer primary key autoincrement,
			number text not null unique,
			date text not null default '',
			description text not null default '',
			quantity real not null,
			price real not null,
			vat_percentage real not null,
			payment_method text not null default '',
			currency text not null default '',
			customer_id integer,
			sum real not null,
			created_at integer not null,
			foreign key (customer_id) references customers(id) on delete set null
		)`,
	} {
		_, err := l.db.ExecContext(ctx, cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// withTx runs fn inside a transaction, committing when fn returns nil.
func (l *Ledger) withTx(ctx context.Context, fn func(tx dbtx) error) (err error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to start transaction, cause %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
		if err != nil {
			err = fmt.Errorf("unable to commit transaction, cause %w", err)
		}
	}()
	return fn(tx)
}

func millis(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}
