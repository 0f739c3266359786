package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-front-desk/internal/handler"
	"github.com/iliyamo/hotel-front-desk/internal/middleware"
	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// RegisterAdmin registers ADMIN-only endpoints under /v1.  Deleting a
// reservation still invalidates the response cache.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, r *handler.ReservationHandler, rep *handler.ReportHandler, jwtSecret string, cache *middleware.Cache) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.DELETE("/reservations/:id", r.Delete, cache.InvalidateOnWrite())
	g.POST("/staff", a.CreateStaff)
	g.GET("/reports/payments.xlsx", rep.PaymentsXLSX)
}
