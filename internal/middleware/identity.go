package middleware

// identity.go holds the context keys JWTAuth fills and the accessors
// handlers and the other middleware read them with.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

const (
    ctxAdminID = "admin_id"
    ctxRole    = "role"
)

// AdminID returns the authenticated staff account, if any.
func AdminID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxAdminID).(uint64)
    return id, ok && id != 0
}

// Role returns the authenticated account's role, or "".
func Role(c echo.Context) string {
    r, _ := c.Get(ctxRole).(string)
    return r
}

// principal identifies the caller in cache and rate limit keys.
func principal(c echo.Context) string {
    if id, ok := AdminID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
