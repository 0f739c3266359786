package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// Store is the unit of work used by the reservation lifecycle.  WithinTx
// runs fn inside one database transaction: the transaction is committed
// when fn returns nil and rolled back otherwise, so a failed operation
// leaves no partial state behind.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	// CountBlocking counts live reservations of roomID whose stay
	// overlaps [checkIn, checkOut), skipping excludeID (0 skips nothing).
	CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error)
	ReservationDetail(ctx context.Context, id uint64) (model.Reservation, error)
	// Room reads a room without locking it.
	Room(ctx context.Context, roomID uint64) (model.Room, error)
}

// Tx is the set of writes a lifecycle operation may combine.
type Tx interface {
	// LockRoom reads the room row with an exclusive lock held until the
	// transaction ends.  Concurrent bookings of the same room serialize here.
	LockRoom(ctx context.Context, roomID uint64) (model.Room, error)
	CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error)
	GetReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error)
	InsertReservation(ctx context.Context, res *model.Reservation) error
	UpdateReservation(ctx context.Context, res model.Reservation) error
	// SetReservationStatus moves id from `from` to `to`.  It fails with
	// ErrConflict when the row is no longer in `from`.
	SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) error
	SetRoomStatus(ctx context.Context, roomID uint64, status model.RoomStatus) error
	InsertPayment(ctx context.Context, p *model.Payment) error
	DeleteReservation(ctx context.Context, id uint64) error
}

// MySQLStore implements Store on a MySQL connection pool.
type MySQLStore struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

// DB exposes the underlying pool for the read-side repositories.
func (s *MySQLStore) DB() *sql.DB { return s.db }

func (s *MySQLStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&mysqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// blockingQuery implements the half-open overlap test
// existing.check_in < new.check_out AND new.check_in < existing.check_out.
const blockingQuery = `SELECT COUNT(*) FROM reservations
 WHERE room_id = ? AND reservation_id <> ?
   AND status IN ('Booked','CheckedIn')
   AND check_in < ? AND check_out > ?`

func countBlocking(ctx context.Context, q queryer, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, blockingQuery,
		roomID, excludeID, model.DateOnly(checkOut), model.DateOnly(checkIn)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count blocking reservations: %w", err)
	}
	return n, nil
}

func (s *MySQLStore) CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	return countBlocking(ctx, s.db, roomID, checkIn, checkOut, excludeID)
}

func (s *MySQLStore) ReservationDetail(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(s.db.QueryRowContext(ctx, reservationSelect+" WHERE r.reservation_id = ?", id))
	return res, translate(err)
}

func (s *MySQLStore) Room(ctx context.Context, roomID uint64) (model.Room, error) {
	rm, err := scanRoom(s.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE room_id = ?", roomID))
	return rm, translate(err)
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) LockRoom(ctx context.Context, roomID uint64) (model.Room, error) {
	rm, err := scanRoom(t.tx.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE room_id = ? FOR UPDATE", roomID))
	return rm, translate(err)
}

func (t *mysqlTx) CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	return countBlocking(ctx, t.tx, roomID, checkIn, checkOut, excludeID)
}

func (t *mysqlTx) GetReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT reservation_id, guest_id, room_id, check_in, check_out, status
	             FROM reservations WHERE reservation_id = ? FOR UPDATE`
	var res model.Reservation
	err := t.tx.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.GuestID, &res.RoomID, &res.CheckIn, &res.CheckOut, &res.Status)
	if err != nil {
		return res, translate(err)
	}
	res.CheckIn, res.CheckOut = model.DateOnly(res.CheckIn), model.DateOnly(res.CheckOut)
	return res, nil
}

func (t *mysqlTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (guest_id, room_id, check_in, check_out, status) VALUES (?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q, res.GuestID, res.RoomID,
		model.DateOnly(res.CheckIn), model.DateOnly(res.CheckOut), res.Status)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

func (t *mysqlTx) UpdateReservation(ctx context.Context, res model.Reservation) error {
	const q = `UPDATE reservations SET guest_id = ?, room_id = ?, check_in = ?, check_out = ?, status = ?
	            WHERE reservation_id = ?`
	result, err := t.tx.ExecContext(ctx, q, res.GuestID, res.RoomID,
		model.DateOnly(res.CheckIn), model.DateOnly(res.CheckOut), res.Status, res.ID)
	if err != nil {
		return translate(err)
	}
	return affected(result)
}

func (t *mysqlTx) SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) error {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE reservation_id = ? AND status = ?", to, id, from)
	if err != nil {
		return translate(err)
	}
	if err := affected(result); err != nil {
		return fmt.Errorf("%w: reservation %d is not %s", ErrConflict, id, from)
	}
	return nil
}

func (t *mysqlTx) SetRoomStatus(ctx context.Context, roomID uint64, status model.RoomStatus) error {
	result, err := t.tx.ExecContext(ctx, "UPDATE rooms SET status = ? WHERE room_id = ?", status, roomID)
	if err != nil {
		return translate(err)
	}
	return affected(result)
}

func (t *mysqlTx) InsertPayment(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (reservation_id, amount_cents, method, payment_date, status, reference)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q, p.ReservationID, p.AmountCents, p.Method, p.PaidAt, p.Status, p.Reference)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (t *mysqlTx) DeleteReservation(ctx context.Context, id uint64) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM reservations WHERE reservation_id = ?", id)
	if err != nil {
		return translate(err)
	}
	return affected(result)
}
