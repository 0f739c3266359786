package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// PaymentRepo reads the payments ledger.  Payments are only ever written by
// the check-out transaction (see Tx.InsertPayment).
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// PaymentLine is a payment joined with the guest and room it was taken for.
// It backs the payments report.
type PaymentLine struct {
	model.Payment
	GuestName  string
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
}

const paymentColumns = "p.payment_id, p.reservation_id, p.amount_cents, p.method, p.payment_date, p.status, p.reference"

// ListByReservation returns the payments recorded for a reservation,
// oldest first.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+paymentColumns+" FROM payments p WHERE p.reservation_id = ? ORDER BY p.payment_date, p.payment_id",
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.AmountCents, &p.Method, &p.PaidAt, &p.Status, &p.Reference); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListBetween returns payments taken in [from, to), with guest and room
// details, ordered by payment date.
func (r *PaymentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]PaymentLine, error) {
	const q = `SELECT ` + paymentColumns + `, g.name, rm.room_number, res.check_in, res.check_out
	  FROM payments p
	  JOIN reservations res ON res.reservation_id = p.reservation_id
	  JOIN guests g ON g.guest_id = res.guest_id
	  JOIN rooms rm ON rm.room_id = res.room_id
	 WHERE p.payment_date >= ? AND p.payment_date < ?
	 ORDER BY p.payment_date, p.payment_id`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PaymentLine{}
	for rows.Next() {
		var l PaymentLine
		if err := rows.Scan(&l.ID, &l.ReservationID, &l.AmountCents, &l.Method, &l.PaidAt, &l.Status, &l.Reference,
			&l.GuestName, &l.RoomNumber, &l.CheckIn, &l.CheckOut); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
