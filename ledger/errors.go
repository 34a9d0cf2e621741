package ledger

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type (
	UserNotFound struct {
		Email string
	}

	EmailInUse struct {
		Email string
	}

	CustomerNotFound struct {
		ID int64
	}

	InvoiceNotFound struct {
		ID int64
	}

	DuplicateInvoice struct {
		Number string
	}
)

func (u UserNotFound) Error() string {
	return fmt.Sprintf("user %v not found", u.Email)
}

func (e EmailInUse) Error() string {
	return fmt.Sprintf("email %v is already registered", e.Email)
}

func (c CustomerNotFound) Error() string {
	return fmt.Sprintf("customer %v not found", c.ID)
}

func (i InvoiceNotFound) Error() string {
	return fmt.Sprintf("invoice %v not found", i.ID)
}

func (d DuplicateInvoice) Error() string {
	return fmt.Sprintf("invoice number %v already exists", d.Number)
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
