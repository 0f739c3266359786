package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// GuestRepo encapsulates all database queries related to guests.  It
// depends on a sql.DB connection which should be configured elsewhere.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the provided DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = "guest_id, name, contact_number, email"

func scanGuest(s rowScanner) (model.Guest, error) {
	var g model.Guest
	var email sql.NullString
	if err := s.Scan(&g.ID, &g.Name, &g.ContactNumber, &email); err != nil {
		return g, err
	}
	g.Email = email.String
	return g, nil
}

// Create inserts a new guest.  On success the guest's ID field is
// populated with the auto-generated value.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = "INSERT INTO guests (name, contact_number, email) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, g.Name, g.ContactNumber, nullString(g.Email))
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches a guest by its ID.  It returns ErrNotFound if no row is
// found.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	const q = "SELECT " + guestColumns + " FROM guests WHERE guest_id = ?"
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, id))
	return g, translate(err)
}

// List returns every guest ordered by name.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	return r.query(ctx, "SELECT "+guestColumns+" FROM guests ORDER BY name, guest_id")
}

// Search returns guests whose name, contact number or e-mail contains
// term.  An empty term lists everyone.
func (r *GuestRepo) Search(ctx context.Context, term string) ([]model.Guest, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	const q = `SELECT ` + guestColumns + ` FROM guests
	           WHERE name LIKE ? OR contact_number LIKE ? OR email LIKE ?
	           ORDER BY name, guest_id`
	like := "%" + escapeLike(term) + "%"
	return r.query(ctx, q, like, like, like)
}

func (r *GuestRepo) query(ctx context.Context, q string, args ...any) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the guest's fields.  It returns ErrNotFound when the
// guest does not exist.
func (r *GuestRepo) Update(ctx context.Context, g model.Guest) error {
	const q = `UPDATE guests SET name = ?, contact_number = ?, email = ? WHERE guest_id = ?`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.ContactNumber, nullString(g.Email), g.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// Delete removes a guest.  A guest still referenced by reservations cannot
// be removed and yields ErrConflict.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM guests WHERE guest_id = ?", id)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// escapeLike escapes the LIKE wildcards in a user supplied term.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
