package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"
)

const ctxHandlerErr = "handler_error"

// RecordError attaches err to the request so RequestLogger logs it.  Used
// by handlers that answer a failure themselves instead of returning it.
func RecordError(c echo.Context, err error) { c.Set(ctxHandlerErr, err) }

// RequestLogger logs one structured line per request through log.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:   true,
        LogURI:      true,
        LogStatus:   true,
        LogLatency:  true,
        LogRemoteIP: true,
        LogError:    true,
        HandleError: true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            fields := []zap.Field{
                zap.String("method", v.Method),
                zap.String("uri", v.URI),
                zap.Int("status", v.Status),
                zap.Duration("latency", v.Latency),
                zap.String("remote_ip", v.RemoteIP),
            }
            if id, ok := AdminID(c); ok {
                fields = append(fields, zap.Uint64("admin_id", id))
            }
            err := v.Error
            if err == nil {
                err, _ = c.Get(ctxHandlerErr).(error)
            }
            if err != nil {
                log.Error("request", append(fields, zap.Error(err))...)
                return nil
            }
            log.Info("request", fields...)
            return nil
        },
    })
}
