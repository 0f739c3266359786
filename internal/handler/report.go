package handler

import (
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-front-desk/internal/report"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the admin exports.
type ReportHandler struct {
    Payments PaymentReader
}

func NewReportHandler(payments PaymentReader) *ReportHandler { return &ReportHandler{Payments: payments} }

// PaymentsXLSX handles GET /v1/reports/payments.xlsx?from=&to=.  Both
// dates are inclusive; without them the current month is exported.
func (h *ReportHandler) PaymentsXLSX(c echo.Context) error {
    now := time.Now().UTC()
    from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
    to := from.AddDate(0, 1, -1)
    var err error
    if raw := c.QueryParam("from"); raw != "" {
        if from, err = parseDate(raw); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
        }
    }
    if raw := c.QueryParam("to"); raw != "" {
        if to, err = parseDate(raw); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
        }
    }
    if to.Before(from) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not be before from"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    lines, err := h.Payments.ListBetween(ctx, from, to.AddDate(0, 0, 1))
    if err != nil {
        return respondError(c, err)
    }
    book, err := report.PaymentsWorkbook(lines, from, to)
    if err != nil {
        return respondError(c, err)
    }
    name := fmt.Sprintf("payments_%s_%s.xlsx", from.Format(dateLayout), to.Format(dateLayout))
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
    return c.Blob(http.StatusOK, xlsxMIME, book)
}
