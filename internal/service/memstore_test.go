package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
	"github.com/iliyamo/hotel-front-desk/internal/queue"
	"github.com/iliyamo/hotel-front-desk/internal/repository"
)

// memStore is an in-memory repository.Store.  WithinTx works on a copy of
// the state and swaps it in only when fn succeeds; the store mutex is held
// for the whole transaction, which mirrors the room row lock.
type memStore struct {
	mu    sync.Mutex
	state memState

	failInsertPayment error
}

type memState struct {
	rooms        map[uint64]model.Room
	guests       map[uint64]model.Guest
	reservations map[uint64]model.Reservation
	payments     []model.Payment
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		rooms:        map[uint64]model.Room{},
		guests:       map[uint64]model.Guest{},
		reservations: map[uint64]model.Reservation{},
		nextID:       1,
	}}
}

func (st memState) clone() memState {
	c := memState{
		rooms:        make(map[uint64]model.Room, len(st.rooms)),
		guests:       make(map[uint64]model.Guest, len(st.guests)),
		reservations: make(map[uint64]model.Reservation, len(st.reservations)),
		payments:     append([]model.Payment(nil), st.payments...),
		nextID:       st.nextID,
	}
	for k, v := range st.rooms {
		c.rooms[k] = v
	}
	for k, v := range st.guests {
		c.guests[k] = v
	}
	for k, v := range st.reservations {
		c.reservations[k] = v
	}
	return c
}

func (s *memStore) addRoom(number string, t model.RoomType) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm := model.Room{ID: s.state.nextID, Number: number, Type: t, Status: model.RoomAvailable, PriceCents: t.DefaultRateCents()}
	s.state.nextID++
	s.state.rooms[rm.ID] = rm
	return rm
}

func (s *memStore) addGuest(name string) model.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := model.Guest{ID: s.state.nextID, Name: name, ContactNumber: "0917", Email: "guest@example.com"}
	s.state.nextID++
	s.state.guests[g.ID] = g
	return g
}

func (s *memStore) room(id uint64) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.rooms[id]
}

func (s *memStore) reservation(id uint64) (model.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.reservations[id]
	return r, ok
}

func (s *memStore) allReservations() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.state.reservations))
	for _, r := range s.state.reservations {
		out = append(out, r)
	}
	return out
}

func (s *memStore) paymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.payments)
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(&memTx{st: &work, store: s}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *memStore) CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countBlocking(&s.state, roomID, checkIn, checkOut, excludeID), nil
}

func (s *memStore) ReservationDetail(ctx context.Context, id uint64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.reservations[id]
	if !ok {
		return r, repository.ErrNotFound
	}
	g, rm := s.state.guests[r.GuestID], s.state.rooms[r.RoomID]
	r.GuestName, r.GuestEmail, r.GuestContact = g.Name, g.Email, g.ContactNumber
	r.RoomNumber, r.PriceCents = rm.Number, rm.PriceCents
	return r, nil
}

func (s *memStore) Room(ctx context.Context, roomID uint64) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm, ok := s.state.rooms[roomID]
	if !ok {
		return rm, repository.ErrNotFound
	}
	return rm, nil
}

func countBlocking(st *memState, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) int {
	n := 0
	for _, r := range st.reservations {
		if r.RoomID == roomID && r.ID != excludeID && r.Status.Live() &&
			model.Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			n++
		}
	}
	return n
}

type memTx struct {
	st    *memState
	store *memStore
}

func (t *memTx) LockRoom(ctx context.Context, roomID uint64) (model.Room, error) {
	rm, ok := t.st.rooms[roomID]
	if !ok {
		return rm, repository.ErrNotFound
	}
	return rm, nil
}

func (t *memTx) CountBlocking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	return countBlocking(t.st, roomID, checkIn, checkOut, excludeID), nil
}

func (t *memTx) GetReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error) {
	r, ok := t.st.reservations[id]
	if !ok {
		return r, repository.ErrNotFound
	}
	return r, nil
}

func (t *memTx) checkRefs(r model.Reservation) error {
	if _, ok := t.st.guests[r.GuestID]; !ok {
		return fmt.Errorf("%w: guest %d", repository.ErrInvalidReference, r.GuestID)
	}
	if _, ok := t.st.rooms[r.RoomID]; !ok {
		return fmt.Errorf("%w: room %d", repository.ErrInvalidReference, r.RoomID)
	}
	return nil
}

func (t *memTx) InsertReservation(ctx context.Context, r *model.Reservation) error {
	if err := t.checkRefs(*r); err != nil {
		return err
	}
	r.ID = t.st.nextID
	t.st.nextID++
	t.st.reservations[r.ID] = *r
	return nil
}

func (t *memTx) UpdateReservation(ctx context.Context, r model.Reservation) error {
	if _, ok := t.st.reservations[r.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := t.checkRefs(r); err != nil {
		return err
	}
	t.st.reservations[r.ID] = r
	return nil
}

func (t *memTx) SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) error {
	r, ok := t.st.reservations[id]
	if !ok || r.Status != from {
		return repository.ErrConflict
	}
	r.Status = to
	t.st.reservations[id] = r
	return nil
}

func (t *memTx) SetRoomStatus(ctx context.Context, roomID uint64, status model.RoomStatus) error {
	rm, ok := t.st.rooms[roomID]
	if !ok {
		return repository.ErrNotFound
	}
	rm.Status = status
	t.st.rooms[roomID] = rm
	return nil
}

func (t *memTx) InsertPayment(ctx context.Context, p *model.Payment) error {
	if t.store.failInsertPayment != nil {
		return t.store.failInsertPayment
	}
	p.ID = t.st.nextID
	t.st.nextID++
	t.st.payments = append(t.st.payments, *p)
	return nil
}

func (t *memTx) DeleteReservation(ctx context.Context, id uint64) error {
	if _, ok := t.st.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range t.st.payments {
		if p.ReservationID == id {
			return repository.ErrConflict
		}
	}
	delete(t.st.reservations, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}
