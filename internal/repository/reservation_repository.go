package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// ReservationRepo provides the read side of reservations: lists for the
// dashboard and the desk screens.  All writes go through Store so that a
// reservation and its room change together.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// reservationSelect joins the guest and room so that list rows carry
// display names and the nightly rate.
const reservationSelect = `SELECT r.reservation_id, r.guest_id, r.room_id, r.check_in, r.check_out, r.status,
       g.name, g.email, g.contact_number, rm.room_number, rm.price_cents
  FROM reservations r
  JOIN guests g ON g.guest_id = r.guest_id
  JOIN rooms rm ON rm.room_id = r.room_id`

type rowScanner interface{ Scan(...any) error }

func scanReservation(s rowScanner) (model.Reservation, error) {
	var (
		res   model.Reservation
		email sql.NullString
	)
	err := s.Scan(&res.ID, &res.GuestID, &res.RoomID, &res.CheckIn, &res.CheckOut, &res.Status,
		&res.GuestName, &email, &res.GuestContact, &res.RoomNumber, &res.PriceCents)
	if err != nil {
		return res, err
	}
	res.GuestEmail = email.String
	res.CheckIn = model.DateOnly(res.CheckIn)
	res.CheckOut = model.DateOnly(res.CheckOut)
	return res, nil
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one reservation with its guest and room details.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+" WHERE r.reservation_id = ?", id))
	return res, translate(err)
}

// List returns reservations newest first.  A non-empty status filters by
// status.
func (r *ReservationRepo) List(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.QueryContext(ctx, reservationSelect+" ORDER BY r.check_in DESC, r.reservation_id DESC")
	} else {
		rows, err = r.db.QueryContext(ctx,
			reservationSelect+" WHERE r.status = ? ORDER BY r.check_in DESC, r.reservation_id DESC", status)
	}
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// PendingCheckIns lists Booked reservations by check-in date, earliest first.
func (r *ReservationRepo) PendingCheckIns(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		reservationSelect+" WHERE r.status = ? ORDER BY r.check_in ASC, r.reservation_id ASC", model.StatusBooked)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// CheckedIn lists in-house reservations by check-out date, earliest first.
func (r *ReservationRepo) CheckedIn(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		reservationSelect+" WHERE r.status = ? ORDER BY r.check_out ASC, r.reservation_id ASC", model.StatusCheckedIn)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Overdue lists CheckedIn reservations whose check-out date is before day.
func (r *ReservationRepo) Overdue(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		reservationSelect+" WHERE r.status = ? AND r.check_out < ? ORDER BY r.check_out ASC",
		model.StatusCheckedIn, model.DateOnly(day))
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}
