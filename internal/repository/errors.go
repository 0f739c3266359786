// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the lifecycle manager to distinguish between different
// failure scenarios without inspecting driver errors themselves.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a room that is still
// referenced by reservations. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when a unique key (room number, username) is
// already taken.
var ErrDuplicate = errors.New("duplicate")

// ErrInvalidReference is returned when a foreign key points at a row that
// does not exist, e.g. a reservation for an unknown guest.
var ErrInvalidReference = errors.New("invalid reference")

// MySQL server error numbers the repositories translate.
const (
	mysqlDupEntry        = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps driver errors onto the sentinels above.  Unknown errors
// are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDupEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
		case mysqlRowIsReferenced:
			return fmt.Errorf("%w: %s", ErrConflict, me.Message)
		case mysqlNoReferencedRow:
			return fmt.Errorf("%w: %s", ErrInvalidReference, me.Message)
		}
	}
	return err
}

// affected turns a zero RowsAffected into ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
