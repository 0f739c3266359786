package handler

import (
    "context"
    "time"

    "github.com/iliyamo/hotel-front-desk/internal/model"
    "github.com/iliyamo/hotel-front-desk/internal/repository"
)

// The handlers depend on these narrow views of the repositories and the
// lifecycle manager.  *repository.GuestRepo, *repository.RoomRepo,
// *repository.ReservationRepo, *repository.PaymentRepo and
// *service.Manager satisfy them.

type GuestStore interface {
    Create(ctx context.Context, g *model.Guest) error
    GetByID(ctx context.Context, id uint64) (model.Guest, error)
    List(ctx context.Context) ([]model.Guest, error)
    Search(ctx context.Context, term string) ([]model.Guest, error)
    Update(ctx context.Context, g model.Guest) error
    Delete(ctx context.Context, id uint64) error
}

type RoomStore interface {
    Create(ctx context.Context, rm *model.Room) error
    GetByID(ctx context.Context, id uint64) (model.Room, error)
    List(ctx context.Context, status model.RoomStatus) ([]model.Room, error)
    Update(ctx context.Context, rm model.Room) error
    SetStatus(ctx context.Context, id uint64, status model.RoomStatus) error
    Delete(ctx context.Context, id uint64) error
    NumberExists(ctx context.Context, number string, excludeID uint64) (bool, error)
    Numbers(ctx context.Context) ([]int, error)
}

type ReservationReader interface {
    GetByID(ctx context.Context, id uint64) (model.Reservation, error)
    List(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
    PendingCheckIns(ctx context.Context) ([]model.Reservation, error)
    CheckedIn(ctx context.Context) ([]model.Reservation, error)
}

type PaymentReader interface {
    ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error)
    ListBetween(ctx context.Context, from, to time.Time) ([]repository.PaymentLine, error)
}

// Lifecycle is the reservation state machine.
type Lifecycle interface {
    IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error)
    Create(ctx context.Context, guestID, roomID uint64, checkIn, checkOut time.Time) (model.Reservation, error)
    Update(ctx context.Context, id, guestID, roomID uint64, checkIn, checkOut time.Time, status model.ReservationStatus) (model.Reservation, error)
    CheckIn(ctx context.Context, id, roomID uint64) error
    CheckOut(ctx context.Context, id, roomID uint64, amountCents int64, method model.PaymentMethod) (model.Payment, error)
    Cancel(ctx context.Context, id, roomID uint64) error
    Delete(ctx context.Context, id uint64) error
}
