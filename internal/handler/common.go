package handler // handler defines the HTTP handlers of the front desk API

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/middleware"
    "github.com/iliyamo/hotel-front-desk/internal/repository"
    "github.com/iliyamo/hotel-front-desk/internal/service"
)

// dateLayout is the wire format of check-in and check-out dates.
const dateLayout = "2006-01-02"

// requestTimeout bounds the store calls of a single request.
const requestTimeout = 5 * time.Second

// Validator adapts go-playground/validator to echo.Validator so handlers
// can call c.Validate on bound request bodies.
type Validator struct {
    v *validator.Validate
}

// NewValidator returns a Validator; install it as e.Validator.
func NewValidator() *Validator { return &Validator{v: validator.New()} }

// Validate runs the struct's `validate` tags.
func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }

// bindBody binds and validates the request body into dst.  It answers the
// request itself on failure and reports whether the handler may go on.
func bindBody(c echo.Context, dst interface{}) (bool, error) {
    if err := c.Bind(dst); err != nil {
        return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(dst); err != nil {
        return false, c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
    }
    return true, nil
}

// validationMessage turns validator errors into "field: rule" pairs.
func validationMessage(err error) string {
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        return err.Error()
    }
    parts := make([]string, 0, len(verrs))
    for _, fe := range verrs {
        parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
    }
    return "invalid fields: " + strings.Join(parts, ", ")
}

// reqCtx returns the request context bounded by requestTimeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// pathID parses the named path parameter as a positive ID.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// queryID parses an optional positive ID query parameter; absent is 0.
func queryID(c echo.Context, name string) (uint64, bool) {
    raw := strings.TrimSpace(c.QueryParam(name))
    if raw == "" {
        return 0, true
    }
    id, err := strconv.ParseUint(raw, 10, 64)
    return id, err == nil
}

// parseDate parses a YYYY-MM-DD date at UTC midnight.
func parseDate(s string) (time.Time, error) {
    return time.Parse(dateLayout, strings.TrimSpace(s))
}

// respondError maps domain and store errors onto status codes and writes
// the {"error": ...} body.  Unknown errors become 500 with a generic
// message so driver details never reach the client.
func respondError(c echo.Context, err error) error {
    status, msg := statusFor(err)
    if status == http.StatusInternalServerError {
        middleware.RecordError(c, err)
    }
    return c.JSON(status, echo.Map{"error": msg})
}

func statusFor(err error) (int, string) {
    var verr *service.ValidationError
    switch {
    case errors.As(err, &verr):
        return http.StatusBadRequest, verr.Reason
    case errors.Is(err, service.ErrValidation):
        return http.StatusBadRequest, err.Error()
    case errors.Is(err, repository.ErrNotFound):
        return http.StatusNotFound, "not found"
    case errors.Is(err, service.ErrRoomUnavailable):
        return http.StatusConflict, service.ErrRoomUnavailable.Error()
    case errors.Is(err, service.ErrInvalidTransition):
        return http.StatusConflict, err.Error()
    case errors.Is(err, repository.ErrDuplicate):
        return http.StatusConflict, "already exists"
    case errors.Is(err, repository.ErrConflict):
        return http.StatusConflict, "still referenced by other records"
    case errors.Is(err, repository.ErrInvalidReference):
        return http.StatusBadRequest, "referenced record does not exist"
    }
    return http.StatusInternalServerError, "internal error"
}
