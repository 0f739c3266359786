package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/model"
    "github.com/iliyamo/hotel-front-desk/internal/service"
)

// GuestHandler serves /v1/guests.
type GuestHandler struct {
    Guests GuestStore
}

func NewGuestHandler(guests GuestStore) *GuestHandler { return &GuestHandler{Guests: guests} }

type guestReq struct {
    Name          string `json:"name" validate:"required,max=100"`
    ContactNumber string `json:"contact_number" validate:"required,max=20"`
    Email         string `json:"email" validate:"omitempty,email,max=100"`
}

func (r guestReq) guest() model.Guest {
    return model.Guest{Name: r.Name, ContactNumber: r.ContactNumber, Email: r.Email}
}

// List handles GET /v1/guests.  ?q= searches name, contact number and
// e-mail.
func (h *GuestHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    var (
        out []model.Guest
        err error
    )
    if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
        out, err = h.Guests.Search(ctx, q)
    } else {
        out, err = h.Guests.List(ctx)
    }
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/guests/:id.
func (h *GuestHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    g, err := h.Guests.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, g)
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
    var req guestReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    g := req.guest()
    if err := service.NormalizeGuest(&g); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Guests.Create(ctx, &g); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /v1/guests/:id.
func (h *GuestHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    var req guestReq
    if ok, err := bindBody(c, &req); !ok {
        return err
    }
    g := req.guest()
    g.ID = id
    if err := service.NormalizeGuest(&g); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Guests.Update(ctx, g); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, g)
}

// Delete handles DELETE /v1/guests/:id.  Guests with reservations cannot
// be deleted.
func (h *GuestHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Guests.Delete(ctx, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
