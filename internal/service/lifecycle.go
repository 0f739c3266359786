// Package service holds the reservation lifecycle: availability, booking,
// check-in, check-out, cancellation and the room status changes that go
// with them.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-front-desk/internal/model"
	"github.com/iliyamo/hotel-front-desk/internal/queue"
	"github.com/iliyamo/hotel-front-desk/internal/repository"
)

// Publisher receives lifecycle events after they commit.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// Manager owns every reservation and room status transition.  Each
// mutating method runs in a single store transaction.
type Manager struct {
	store repository.Store
	pub   Publisher
	log   *zap.Logger
	now   func() time.Time
}

// NewManager returns a Manager.  pub may be nil to disable events.
func NewManager(store repository.Store, pub Publisher, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, pub: pub, log: log, now: time.Now}
}

// WithClock replaces the clock used for payment dates and event stamps.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func validRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return invalid("check-in and check-out dates are required")
	}
	if !model.DateOnly(checkOut).After(model.DateOnly(checkIn)) {
		return invalid("check-out date must be after check-in date")
	}
	return nil
}

// IsAvailable reports whether roomID could be booked for [checkIn, checkOut):
// the room is not under maintenance and no live reservation of it overlaps
// the range.  excludeID (0 for none) is ignored, so an existing reservation
// can be re-validated against everything else.
func (m *Manager) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error) {
	if roomID == 0 {
		return false, invalid("room is required")
	}
	if err := validRange(checkIn, checkOut); err != nil {
		return false, err
	}
	rm, err := m.store.Room(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("room %d: %w", roomID, err)
	}
	if rm.Status == model.RoomMaintenance {
		return false, nil
	}
	n, err := m.store.CountBlocking(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// ensureFree locks the room and fails with ErrRoomUnavailable when another
// live reservation overlaps the range.
func ensureFree(ctx context.Context, tx repository.Tx, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) error {
	rm, err := tx.LockRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("room %d: %w", roomID, err)
	}
	if rm.Status == model.RoomMaintenance {
		return fmt.Errorf("room %s is under maintenance: %w", rm.Number, ErrRoomUnavailable)
	}
	n, err := tx.CountBlocking(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrRoomUnavailable
	}
	return nil
}

func guestRef(err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		return invalid("guest or room does not exist")
	}
	return err
}

// Create books roomID for guestID over [checkIn, checkOut).  The new
// reservation is Booked and the room becomes Occupied.
func (m *Manager) Create(ctx context.Context, guestID, roomID uint64, checkIn, checkOut time.Time) (model.Reservation, error) {
	if guestID == 0 {
		return model.Reservation{}, invalid("guest is required")
	}
	if roomID == 0 {
		return model.Reservation{}, invalid("room is required")
	}
	if err := validRange(checkIn, checkOut); err != nil {
		return model.Reservation{}, err
	}
	res := model.Reservation{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  model.DateOnly(checkIn),
		CheckOut: model.DateOnly(checkOut),
		Status:   model.StatusBooked,
	}
	err := m.store.WithinTx(ctx, func(tx repository.Tx) error {
		if err := ensureFree(ctx, tx, roomID, res.CheckIn, res.CheckOut, 0); err != nil {
			return err
		}
		if err := tx.InsertReservation(ctx, &res); err != nil {
			return guestRef(err)
		}
		return tx.SetRoomStatus(ctx, roomID, model.RoomOccupied)
	})
	if err != nil {
		return model.Reservation{}, err
	}
	res = m.detail(ctx, res)
	m.publish(ctx, queue.NewReservationEvent(queue.EventBooked, res, m.now()))
	return res, nil
}

// Update overwrites every field of reservation id.  status must equal the
// current status or be a legal transition from it, and terminal
// reservations cannot be edited.  When the resulting status is live the
// new range is re-validated against the room, excluding id itself.  Room
// status is left untouched.
func (m *Manager) Update(ctx context.Context, id, guestID, roomID uint64, checkIn, checkOut time.Time, status model.ReservationStatus) (model.Reservation, error) {
	if id == 0 || guestID == 0 || roomID == 0 {
		return model.Reservation{}, invalid("reservation, guest and room are required")
	}
	if err := validRange(checkIn, checkOut); err != nil {
		return model.Reservation{}, err
	}
	if !status.Valid() {
		return model.Reservation{}, invalid("unknown status %q", status)
	}
	res := model.Reservation{
		ID:       id,
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  model.DateOnly(checkIn),
		CheckOut: model.DateOnly(checkOut),
		Status:   status,
	}
	err := m.store.WithinTx(ctx, func(tx repository.Tx) error {
		cur, err := tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("reservation %d: %w", id, err)
		}
		if cur.Status.Terminal() {
			return fmt.Errorf("reservation %d is %s: %w", id, cur.Status, ErrInvalidTransition)
		}
		if status != cur.Status && !cur.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", cur.Status, status, ErrInvalidTransition)
		}
		if status.Live() {
			if err := ensureFree(ctx, tx, roomID, res.CheckIn, res.CheckOut, id); err != nil {
				return err
			}
		}
		return guestRef(tx.UpdateReservation(ctx, res))
	})
	if err != nil {
		return model.Reservation{}, err
	}
	res = m.detail(ctx, res)
	m.publish(ctx, queue.NewReservationEvent(queue.EventUpdated, res, m.now()))
	return res, nil
}

// lockForTransition loads reservation id, resolves the room (0 means the
// reservation's own room) and checks that the current status is one of
// from.
func lockForTransition(ctx context.Context, tx repository.Tx, id, roomID uint64, from ...model.ReservationStatus) (model.Reservation, error) {
	cur, err := tx.GetReservationForUpdate(ctx, id)
	if err != nil {
		return cur, fmt.Errorf("reservation %d: %w", id, err)
	}
	if roomID != 0 && roomID != cur.RoomID {
		return cur, invalid("reservation %d is for room %d, not %d", id, cur.RoomID, roomID)
	}
	for _, st := range from {
		if cur.Status == st {
			return cur, nil
		}
	}
	return cur, fmt.Errorf("reservation %d is %s: %w", id, cur.Status, ErrInvalidTransition)
}

// CheckIn moves a Booked reservation to CheckedIn and marks its room
// Occupied.  roomID may be 0.
func (m *Manager) CheckIn(ctx context.Context, id, roomID uint64) error {
	if id == 0 {
		return invalid("reservation is required")
	}
	var cur model.Reservation
	err := m.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		cur, err = lockForTransition(ctx, tx, id, roomID, model.StatusBooked)
		if err != nil {
			return err
		}
		if err := tx.SetReservationStatus(ctx, id, model.StatusBooked, model.StatusCheckedIn); err != nil {
			return err
		}
		return tx.SetRoomStatus(ctx, cur.RoomID, model.RoomOccupied)
	})
	if err != nil {
		return err
	}
	cur.Status = model.StatusCheckedIn
	m.publish(ctx, queue.NewReservationEvent(queue.EventCheckedIn, m.detail(ctx, cur), m.now()))
	return nil
}

// CheckOut moves a CheckedIn reservation to CheckedOut, records the
// payment and frees the room, all or nothing.
func (m *Manager) CheckOut(ctx context.Context, id, roomID uint64, amountCents int64, method model.PaymentMethod) (model.Payment, error) {
	if id == 0 {
		return model.Payment{}, invalid("reservation is required")
	}
	if amountCents < 0 {
		return model.Payment{}, invalid("amount must not be negative")
	}
	method, err := model.ParsePaymentMethod(string(method))
	if err != nil {
		return model.Payment{}, invalid("%v", err)
	}
	p := model.Payment{
		ReservationID: id,
		AmountCents:   amountCents,
		Method:        method,
		PaidAt:        m.now().UTC().Truncate(time.Second),
		Status:        model.PaymentPaid,
		Reference:     uuid.NewString(),
	}
	var cur model.Reservation
	err = m.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		cur, err = lockForTransition(ctx, tx, id, roomID, model.StatusCheckedIn)
		if err != nil {
			return err
		}
		if err := tx.SetReservationStatus(ctx, id, model.StatusCheckedIn, model.StatusCheckedOut); err != nil {
			return err
		}
		if err := tx.InsertPayment(ctx, &p); err != nil {
			return err
		}
		return tx.SetRoomStatus(ctx, cur.RoomID, model.RoomAvailable)
	})
	if err != nil {
		return model.Payment{}, err
	}
	cur.Status = model.StatusCheckedOut
	ev := queue.NewReservationEvent(queue.EventCheckedOut, m.detail(ctx, cur), m.now()).WithPayment(p)
	m.publish(ctx, ev)
	return p, nil
}

// Cancel moves a live reservation to Cancelled and makes its room
// Available.  Cancelling a reservation twice fails with
// ErrInvalidTransition.
func (m *Manager) Cancel(ctx context.Context, id, roomID uint64) error {
	if id == 0 {
		return invalid("reservation is required")
	}
	var cur model.Reservation
	err := m.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		cur, err = lockForTransition(ctx, tx, id, roomID, model.StatusBooked, model.StatusCheckedIn)
		if err != nil {
			return err
		}
		if err := tx.SetReservationStatus(ctx, id, cur.Status, model.StatusCancelled); err != nil {
			return err
		}
		return tx.SetRoomStatus(ctx, cur.RoomID, model.RoomAvailable)
	})
	if err != nil {
		return err
	}
	cur.Status = model.StatusCancelled
	m.publish(ctx, queue.NewReservationEvent(queue.EventCancelled, m.detail(ctx, cur), m.now()))
	return nil
}

// Delete removes reservation id regardless of status.  The room status is
// not changed.  A reservation that already has payments fails with
// repository.ErrConflict.
func (m *Manager) Delete(ctx context.Context, id uint64) error {
	if id == 0 {
		return invalid("reservation is required")
	}
	var cur model.Reservation
	err := m.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		cur, err = tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("reservation %d: %w", id, err)
		}
		return tx.DeleteReservation(ctx, id)
	})
	if err != nil {
		return err
	}
	m.publish(ctx, queue.NewReservationEvent(queue.EventDeleted, cur, m.now()))
	return nil
}

// detail reloads res with guest and room details for responses and events.
// On failure the bare reservation is returned.
func (m *Manager) detail(ctx context.Context, res model.Reservation) model.Reservation {
	d, err := m.store.ReservationDetail(ctx, res.ID)
	if err != nil {
		m.log.Warn("load reservation detail", zap.Uint64("reservation_id", res.ID), zap.Error(err))
		return res
	}
	return d
}

// publish sends ev best effort; the change it describes has committed.
func (m *Manager) publish(ctx context.Context, ev queue.ReservationEvent) {
	if m.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := m.pub.Publish(ctx, ev); err != nil {
		m.log.Warn("publish reservation event",
			zap.String("event", ev.Type), zap.Uint64("reservation_id", ev.ReservationID), zap.Error(err))
		return
	}
	m.log.Debug("published reservation event",
		zap.String("event", ev.Type), zap.Uint64("reservation_id", ev.ReservationID))
}
