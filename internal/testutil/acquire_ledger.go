package testutil

import (
	"context"
	"os"
	"time"

	"github.com/Gren-95/FinanceFlux/ledger"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireLedger opens a fresh ledger in a temporary directory. The returned
// func closes it and removes the directory.
func AcquireLedger(ctx context.Context, t TestLog, name string) (*ledger.Ledger, func()) {
	dir, err := os.MkdirTemp("", "financeflux-"+name)
	if err != nil {
		t.Fatal(err)
	}
	books, err := ledger.Open(ctx, dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return books, func() {
		err := books.Close()
		if err != nil {
			t.Log("unable to close ledger", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// FixedClock returns a clock that reads *now, tests move time by assigning
// to it.
func FixedClock(now *time.Time) func() time.Time {
	return func() time.Time {
		return *now
	}
}
