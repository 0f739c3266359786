// Package report exports front desk data as spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/hotel-front-desk/internal/billing"
	"github.com/iliyamo/hotel-front-desk/internal/repository"
)

const paymentsSheet = "Payments"

var paymentHeaders = []string{"#", "Paid at", "Receipt", "Reservation", "Guest", "Room", "Check-in", "Check-out", "Nights", "Method", "Amount"}

// PaymentsWorkbook renders payments taken between from and to as an xlsx
// workbook: one row per payment followed by a total row.
func PaymentsWorkbook(lines []repository.PaymentLine, from, to time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", paymentsSheet); err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Payments %s to %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err := f.SetCellValue(paymentsSheet, "A1", title); err != nil {
		return nil, err
	}

	for i, h := range paymentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(paymentsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	var total int64
	for i, l := range lines {
		row := i + 3
		values := []any{
			i + 1,
			l.PaidAt.UTC().Format("2006-01-02 15:04:05"),
			l.Reference,
			l.ReservationID,
			l.GuestName,
			l.RoomNumber,
			l.CheckIn.Format(time.DateOnly),
			l.CheckOut.Format(time.DateOnly),
			billing.Nights(l.CheckIn, l.CheckOut),
			string(l.Method),
			float64(l.AmountCents) / 100,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(paymentsSheet, cell, v); err != nil {
				return nil, err
			}
		}
		total += l.AmountCents
	}

	totalRow := len(lines) + 4
	_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("A%d", totalRow), "Total")
	_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("K%d", totalRow), float64(total)/100)

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(paymentsSheet, "A2", "K2", style)
		_ = f.SetCellStyle(paymentsSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("K%d", totalRow), style)
	}
	if style, err := f.NewStyle(&excelize.Style{NumFmt: 4}); err == nil { // #,##0.00
		_ = f.SetCellStyle(paymentsSheet, "K3", fmt.Sprintf("K%d", totalRow), style)
	}
	_ = f.SetColWidth(paymentsSheet, "B", "C", 22)
	_ = f.SetColWidth(paymentsSheet, "E", "E", 24)
	_ = f.SetColWidth(paymentsSheet, "G", "H", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
