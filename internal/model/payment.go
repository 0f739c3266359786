package model

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMethod is how a guest settled the bill at check-out.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "Cash"
	MethodCard  PaymentMethod = "Card"
	MethodGCash PaymentMethod = "GCash"
)

// PaymentPaid is the only status a payment is recorded with.
const PaymentPaid = "Paid"

// ParsePaymentMethod matches s case-insensitively against the known methods.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	for _, m := range []PaymentMethod{MethodCash, MethodCard, MethodGCash} {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Payment models an entry in the `payments` table.  Payments are appended
// only when a reservation is checked out.
//
// Fields:
//
//	ID            - primary key identifier.
//	ReservationID - reservation the payment settles.
//	AmountCents   - amount paid in cents.
//	Method        - Cash, Card or GCash.
//	PaidAt        - payment_date, set when the row is created.
//	Status        - always "Paid".
//	Reference     - receipt number printed for the guest.
type Payment struct {
	ID            uint64        `json:"id"`             // payments.payment_id
	ReservationID uint64        `json:"reservation_id"` // payments.reservation_id
	AmountCents   int64         `json:"amount_cents"`   // payments.amount_cents
	Method        PaymentMethod `json:"method"`         // payments.method
	PaidAt        time.Time     `json:"payment_date"`   // payments.payment_date
	Status        string        `json:"status"`         // payments.status
	Reference     string        `json:"reference"`      // payments.reference
}
