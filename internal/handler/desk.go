package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/billing"
    "github.com/iliyamo/hotel-front-desk/internal/model"
)

// CheckIns handles GET /v1/check-ins: Booked reservations, earliest
// arrival first.
func (h *ReservationHandler) CheckIns(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    out, err := h.Reservations.PendingCheckIns(ctx)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// CheckOuts handles GET /v1/check-outs: in-house reservations, earliest
// departure first, each with the amount due.
func (h *ReservationHandler) CheckOuts(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    out, err := h.Reservations.CheckedIn(ctx)
    if err != nil {
        return respondError(c, err)
    }
    for i := range out {
        billing.Annotate(&out[i])
    }
    return c.JSON(http.StatusOK, out)
}

// Availability handles
// GET /v1/availability?room_id=&check_in=&check_out=&exclude_id=.
func (h *ReservationHandler) Availability(c echo.Context) error {
    roomID, ok := queryID(c, "room_id")
    if !ok || roomID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
    }
    exclude, ok := queryID(c, "exclude_id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude_id"})
    }
    in, err1 := parseDate(c.QueryParam("check_in"))
    out, err2 := parseDate(c.QueryParam("check_out"))
    if err1 != nil || err2 != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be YYYY-MM-DD"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    free, err := h.Desk.IsAvailable(ctx, roomID, in, out, exclude)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "room_id":   roomID,
        "check_in":  in.Format(dateLayout),
        "check_out": out.Format(dateLayout),
        "available": free,
    })
}

// QuoteHandler serves GET /v1/quote.
type QuoteHandler struct {
    Rooms RoomStore
}

func NewQuoteHandler(rooms RoomStore) *QuoteHandler { return &QuoteHandler{Rooms: rooms} }

// Quote prices a stay.  The rate is the room's price when room_id is
// given, otherwise the default rate of ?type=.  An invalid range quotes
// zero nights.
func (h *QuoteHandler) Quote(c echo.Context) error {
    in, err1 := parseDate(c.QueryParam("check_in"))
    out, err2 := parseDate(c.QueryParam("check_out"))
    if err1 != nil || err2 != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be YYYY-MM-DD"})
    }
    roomID, ok := queryID(c, "room_id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
    }

    var rate int64
    if roomID != 0 {
        ctx, cancel := reqCtx(c)
        defer cancel()
        rm, err := h.Rooms.GetByID(ctx, roomID)
        if err != nil {
            return respondError(c, err)
        }
        rate = rm.PriceCents
    } else {
        t, err := model.ParseRoomType(c.QueryParam("type"))
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id or type required"})
        }
        rate = t.DefaultRateCents()
    }
    return c.JSON(http.StatusOK, billing.NewQuote(in, out, rate))
}
