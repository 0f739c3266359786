package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-front-desk/internal/handler"    // handlers for every endpoint
	"github.com/iliyamo/hotel-front-desk/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, which pings db.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the authentication routes.  Login, refresh and
// logout live under /v1/auth behind the rate limiter; /v1/me requires a
// valid access token and is never cached since it differs per account.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/login", a.Login)
	// rotates the refresh token
	g.POST("/refresh", a.Refresh)
	// accepts a refresh_token body or a bearer token; no JWT middleware
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
	)
	auth.GET("/me", a.Me)
}
