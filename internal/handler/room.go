package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/model"
    "github.com/iliyamo/hotel-front-desk/internal/repository"
    "github.com/iliyamo/hotel-front-desk/internal/service"
)

// RoomHandler serves /v1/rooms.
type RoomHandler struct {
    Rooms RoomStore
}

func NewRoomHandler(rooms RoomStore) *RoomHandler { return &RoomHandler{Rooms: rooms} }

// roomReq is the create/update body.  price_cents may be omitted to use
// the default rate of the room type; status defaults to Available.
type roomReq struct {
    Number     string `json:"room_number" validate:"required"`
    Type       string `json:"type" validate:"required"`
    Status     string `json:"status"`
    PriceCents int64  `json:"price_cents" validate:"gte=0"`
}

// List handles GET /v1/rooms[?status=].
func (h *RoomHandler) List(c echo.Context) error {
    var status model.RoomStatus
    if raw := c.QueryParam("status"); raw != "" {
        st, err := model.ParseRoomStatus(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        status = st
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    rooms, err := h.Rooms.List(ctx, status)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    rm, err := h.Rooms.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, rm)
}

// NextNumber handles GET /v1/rooms/next-number.
func (h *RoomHandler) NextNumber(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    taken, err := h.Rooms.Numbers(ctx)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"room_number": service.NextRoomNumber(taken)})
}

// save validates rm and writes it.  A number already used by another
// room is reported as repository.ErrDuplicate.
func (h *RoomHandler) save(ctx context.Context, rm *model.Room, create bool) error {
    if err := service.NormalizeRoom(rm); err != nil {
        return err
    }
    taken, err := h.Rooms.NumberExists(ctx, rm.Number, rm.ID)
    if err != nil {
        return err
    }
    if taken {
        return fmt.Errorf("room number %s: %w", rm.Number, repository.ErrDuplicate)
    }
    if create {
        return h.Rooms.Create(ctx, rm)
    }
    return h.Rooms.Update(ctx, *rm)
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    rm := model.Room{Number: req.Number, Type: model.RoomType(req.Type), Status: model.RoomStatus(req.Status), PriceCents: req.PriceCents}
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.save(ctx, &rm, true); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, rm)
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req roomReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    rm := model.Room{ID: id, Number: req.Number, Type: model.RoomType(req.Type), Status: model.RoomStatus(req.Status), PriceCents: req.PriceCents}
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.save(ctx, &rm, false); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, rm)
}

type roomStatusReq struct {
    Status string `json:"status" validate:"required"`
}

// SetStatus handles PATCH /v1/rooms/:id/status, typically to put a room
// into or out of Maintenance.
func (h *RoomHandler) SetStatus(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req roomStatusReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    st, err := model.ParseRoomStatus(req.Status)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Rooms.SetStatus(ctx, id, st); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": st})
}

// Delete handles DELETE /v1/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Rooms.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations"})
        }
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
