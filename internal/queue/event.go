// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer that move them.
package queue

import (
    "time"

    "github.com/iliyamo/hotel-front-desk/internal/model"
)

// Lifecycle event types.  They double as the AMQP message type.
const (
    EventBooked     = "reservation.booked"
    EventUpdated    = "reservation.updated"
    EventCheckedIn  = "reservation.checked_in"
    EventCheckedOut = "reservation.checked_out"
    EventCancelled  = "reservation.cancelled"
    EventDeleted    = "reservation.deleted"
)

// ReservationEvent is published after a lifecycle change has committed.
// It contains enough information for downstream consumers to log or
// notify the guest without querying the primary database.
type ReservationEvent struct {
    Type          string `json:"type"`
    ReservationID uint64 `json:"reservation_id"`
    GuestID       uint64 `json:"guest_id"`
    GuestName     string `json:"guest_name,omitempty"`
    GuestEmail    string `json:"guest_email,omitempty"`
    GuestContact  string `json:"guest_contact,omitempty"`
    RoomID        uint64 `json:"room_id"`
    RoomNumber    string `json:"room_number,omitempty"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
    Status        string `json:"status"`
    AmountCents   int64  `json:"amount_cents,omitempty"`
    Method        string `json:"method,omitempty"`
    Reference     string `json:"reference,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}

// NewReservationEvent builds an event of type typ from a reservation.
func NewReservationEvent(typ string, r model.Reservation, at time.Time) ReservationEvent {
    return ReservationEvent{
        Type:          typ,
        ReservationID: r.ID,
        GuestID:       r.GuestID,
        GuestName:     r.GuestName,
        GuestEmail:    r.GuestEmail,
        GuestContact:  r.GuestContact,
        RoomID:        r.RoomID,
        RoomNumber:    r.RoomNumber,
        CheckIn:       r.CheckIn.Format(time.DateOnly),
        CheckOut:      r.CheckOut.Format(time.DateOnly),
        Status:        string(r.Status),
        OccurredAt:    at.UTC().Format(time.RFC3339),
    }
}

// WithPayment copies the payment details onto the event.
func (e ReservationEvent) WithPayment(p model.Payment) ReservationEvent {
    e.AmountCents = p.AmountCents
    e.Method = string(p.Method)
    e.Reference = p.Reference
    return e
}
