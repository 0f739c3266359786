package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Status changes driven by
// the reservation lifecycle go through Store instead so that they share a
// transaction with the reservation update; SetStatus here is for staff
// overrides such as Maintenance.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "room_id, room_number, type, status, price_cents"

func scanRoom(s rowScanner) (model.Room, error) {
	var rm model.Room
	err := s.Scan(&rm.ID, &rm.Number, &rm.Type, &rm.Status, &rm.PriceCents)
	return rm, err
}

// Create inserts a room.  A taken room number yields ErrDuplicate.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = "INSERT INTO rooms (room_number, type, status, price_cents) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.Status, rm.PriceCents)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID fetches a room, returning ErrNotFound when it does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE room_id = ?"
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	return rm, translate(err)
}

// List returns rooms ordered numerically by room number.  A non-empty
// status restricts the result to rooms in that status.
func (r *RoomRepo) List(ctx context.Context, status model.RoomStatus) ([]model.Room, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+roomColumns+" FROM rooms ORDER BY CAST(room_number AS UNSIGNED)")
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+roomColumns+" FROM rooms WHERE status = ? ORDER BY CAST(room_number AS UNSIGNED)", status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// ListAvailable is List(ctx, model.RoomAvailable).
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
	return r.List(ctx, model.RoomAvailable)
}

// Update overwrites number, type, status and price.
func (r *RoomRepo) Update(ctx context.Context, rm model.Room) error {
	const q = `UPDATE rooms SET room_number = ?, type = ?, status = ?, price_cents = ? WHERE room_id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.Status, rm.PriceCents, rm.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// SetStatus changes only the room status.
func (r *RoomRepo) SetStatus(ctx context.Context, id uint64, status model.RoomStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE rooms SET status = ? WHERE room_id = ?", status, id)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// Delete removes a room.  Rooms referenced by reservations yield
// ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE room_id = ?", id)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// NumberExists reports whether another room (not excludeID) already uses
// number.
func (r *RoomRepo) NumberExists(ctx context.Context, number string, excludeID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rooms WHERE room_number = ? AND room_id <> ?", number, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Numbers returns every room number that parses as an integer.
func (r *RoomRepo) Numbers(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT room_number FROM rooms")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out, rows.Err()
}
