package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/billing"
    "github.com/iliyamo/hotel-front-desk/internal/model"
)

// ReservationHandler serves /v1/reservations and the desk lists.  Every
// state change goes through Desk; the readers only serve lists and
// details.
type ReservationHandler struct {
    Desk         Lifecycle
    Reservations ReservationReader
    Payments     PaymentReader
}

func NewReservationHandler(desk Lifecycle, reservations ReservationReader, payments PaymentReader) *ReservationHandler {
    return &ReservationHandler{Desk: desk, Reservations: reservations, Payments: payments}
}

type reservationReq struct {
    GuestID  uint64 `json:"guest_id" validate:"required"`
    RoomID   uint64 `json:"room_id" validate:"required"`
    CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
    CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
    Status   string `json:"status"`
}

func (r reservationReq) dates() (time.Time, time.Time, error) {
    in, err := parseDate(r.CheckIn)
    if err != nil {
        return time.Time{}, time.Time{}, err
    }
    out, err := parseDate(r.CheckOut)
    return in, out, err
}

// List handles GET /v1/reservations[?status=].
func (h *ReservationHandler) List(c echo.Context) error {
    var status model.ReservationStatus
    if raw := c.QueryParam("status"); raw != "" {
        st, err := model.ParseReservationStatus(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        status = st
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    out, err := h.Reservations.List(ctx, status)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/reservations/:id.  The response carries the nights
// and total of the stay.
func (h *ReservationHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    billing.Annotate(&res)
    return c.JSON(http.StatusOK, res)
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req reservationReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    in, out, err := req.dates()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Desk.Create(ctx, req.GuestID, req.RoomID, in, out)
    if err != nil {
        return respondError(c, err)
    }
    billing.Annotate(&res)
    return c.JSON(http.StatusCreated, res)
}

// Update handles PUT /v1/reservations/:id.  An omitted status keeps the
// current one.
func (h *ReservationHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req reservationReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    in, out, err := req.dates()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    var status model.ReservationStatus
    if req.Status != "" {
        if status, err = model.ParseReservationStatus(req.Status); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
    } else {
        cur, err := h.Reservations.GetByID(ctx, id)
        if err != nil {
            return respondError(c, err)
        }
        status = cur.Status
    }

    res, err := h.Desk.Update(ctx, id, req.GuestID, req.RoomID, in, out, status)
    if err != nil {
        return respondError(c, err)
    }
    billing.Annotate(&res)
    return c.JSON(http.StatusOK, res)
}

// roomRef is the optional body of check-in and cancel.  An empty body
// binds to the zero value; a malformed one is rejected.  A non-zero room_id
// must match the reservation's room.
type roomRef struct {
    RoomID uint64 `json:"room_id"`
}

// CheckIn handles POST /v1/reservations/:id/check-in.
func (h *ReservationHandler) CheckIn(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req roomRef
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Desk.CheckIn(ctx, id, req.RoomID); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCheckedIn})
}

type checkOutReq struct {
    RoomID      uint64 `json:"room_id"`
    AmountCents *int64 `json:"amount_cents" validate:"omitempty,gte=0"`
    Method      string `json:"method" validate:"required"`
}

// CheckOut handles POST /v1/reservations/:id/check-out.  Without
// amount_cents the guest pays nights times the room's rate.
func (h *ReservationHandler) CheckOut(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req checkOutReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    var amount int64
    if req.AmountCents != nil {
        amount = *req.AmountCents
    } else {
        res, err := h.Reservations.GetByID(ctx, id)
        if err != nil {
            return respondError(c, err)
        }
        amount = billing.ComputeTotal(res.CheckIn, res.CheckOut, res.PriceCents)
    }

    p, err := h.Desk.CheckOut(ctx, id, req.RoomID, amount, model.PaymentMethod(req.Method))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCheckedOut, "payment": p})
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req roomRef
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Desk.Cancel(ctx, id, req.RoomID); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}

// Delete handles DELETE /v1/reservations/:id (admin only).
func (h *ReservationHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Desk.Delete(ctx, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// PaymentHistory handles GET /v1/reservations/:id/payments.
func (h *ReservationHandler) PaymentHistory(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if _, err := h.Reservations.GetByID(ctx, id); err != nil {
        return respondError(c, err)
    }
    out, err := h.Payments.ListByReservation(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}
