package model

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusBooked     ReservationStatus = "Booked"
	StatusCheckedIn  ReservationStatus = "CheckedIn"
	StatusCheckedOut ReservationStatus = "CheckedOut"
	StatusCancelled  ReservationStatus = "Cancelled"
)

// transitions lists, for every state, the states it may move to.
// CheckedOut and Cancelled are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusBooked:     {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut: nil,
	StatusCancelled:  nil,
}

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a reservation in state s may move to next.
// Staying in the same state is not a transition and returns false.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s ReservationStatus) Terminal() bool { return s.Valid() && len(transitions[s]) == 0 }

// Live reports whether a reservation in state s blocks its room.
func (s ReservationStatus) Live() bool { return s == StatusBooked || s == StatusCheckedIn }

// ParseReservationStatus matches s case-insensitively against the known
// statuses.  "Checked In" style spellings are accepted.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for st := range transitions {
		if strings.EqualFold(string(st), norm) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// Reservation records a guest's stay in a room over a date range.  CheckIn
// and CheckOut are dates without a time component (UTC midnight) and the
// range is half-open: the guest leaves on CheckOut.
//
// GuestName, RoomNumber and PriceCents are joined from guests and rooms for
// display and are never written.  Nights and TotalCents are computed.
type Reservation struct {
	ID       uint64            `json:"id"`        // reservations.reservation_id
	GuestID  uint64            `json:"guest_id"`  // reservations.guest_id
	RoomID   uint64            `json:"room_id"`   // reservations.room_id
	CheckIn  time.Time         `json:"check_in"`  // reservations.check_in (DATE)
	CheckOut time.Time         `json:"check_out"` // reservations.check_out (DATE)
	Status   ReservationStatus `json:"status"`    // reservations.status

	GuestName    string `json:"guest_name,omitempty"`
	GuestEmail   string `json:"guest_email,omitempty"`
	GuestContact string `json:"guest_contact,omitempty"`
	RoomNumber   string `json:"room_number,omitempty"`
	PriceCents   int64  `json:"price_cents,omitempty"`
	Nights       int    `json:"nights,omitempty"`
	TotalCents   int64  `json:"total_cents,omitempty"`
}

// DateOnly strips the time of day from t, keeping its calendar date, and
// returns it at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open date ranges [in1, out1) and
// [in2, out2) intersect.  Only the date part of each bound is compared.
func Overlaps(in1, out1, in2, out2 time.Time) bool {
	in1, out1, in2, out2 = DateOnly(in1), DateOnly(out1), DateOnly(in2), DateOnly(out2)
	return in1.Before(out2) && in2.Before(out1)
}
