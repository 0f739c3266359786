package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-front-desk/internal/handler"
	"github.com/iliyamo/hotel-front-desk/internal/middleware"
	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// DeskHandlers groups the handlers behind the staff routes.
type DeskHandlers struct {
	Guests       *handler.GuestHandler
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
	Quotes       *handler.QuoteHandler
}

// RegisterDesk registers the front desk endpoints under /v1.  All routes
// require a valid JWT with the ADMIN or STAFF role.  GET responses go
// through the Redis cache; every successful write invalidates it.
func RegisterDesk(e *echo.Echo, h DeskHandlers, jwtSecret string, cache *middleware.Cache) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
		cache.InvalidateOnWrite(),
		cache.Middleware(),
	)

	// ---- Guests ----
	g.GET("/guests", h.Guests.List) // ?q= searches
	g.GET("/guests/:id", h.Guests.Get)
	g.POST("/guests", h.Guests.Create)
	g.PUT("/guests/:id", h.Guests.Update)
	g.DELETE("/guests/:id", h.Guests.Delete)

	// ---- Rooms ----
	g.GET("/rooms", h.Rooms.List)
	// static segment wins over :id in echo's router
	g.GET("/rooms/next-number", h.Rooms.NextNumber)
	g.GET("/rooms/:id", h.Rooms.Get)
	g.POST("/rooms", h.Rooms.Create)
	g.PUT("/rooms/:id", h.Rooms.Update)
	g.PATCH("/rooms/:id/status", h.Rooms.SetStatus)
	g.DELETE("/rooms/:id", h.Rooms.Delete)

	// ---- Reservations ----
	r := h.Reservations
	g.GET("/reservations", r.List)
	g.GET("/reservations/:id", r.Get)
	g.POST("/reservations", r.Create)
	g.PUT("/reservations/:id", r.Update)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.POST("/reservations/:id/check-in", r.CheckIn)
	g.POST("/reservations/:id/check-out", r.CheckOut)
	g.GET("/reservations/:id/payments", r.PaymentHistory)

	// ---- Desk lists and lookups ----
	g.GET("/check-ins", r.CheckIns)
	g.GET("/check-outs", r.CheckOuts)
	g.GET("/availability", r.Availability)
	g.GET("/quote", h.Quotes.Quote)
}
