package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")
	cases := []struct {
		in   error
		want error
	}{
		{sql.ErrNoRows, ErrNotFound},
		{&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '101'"}, ErrDuplicate},
		{&mysql.MySQLError{Number: 1451}, ErrConflict},
		{&mysql.MySQLError{Number: 1452}, ErrInvalidReference},
		{other, other},
	}
	for _, c := range cases {
		if got := translate(c.in); !errors.Is(got, c.want) {
			t.Errorf("translate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if translate(nil) != nil {
		t.Fatal("translate(nil) must be nil")
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("escapeLike = %q", got)
	}
}
