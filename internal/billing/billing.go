// Package billing computes what a stay costs.  Rates and totals are integer
// cents; a stay is charged per night with no proration, taxes or discounts.
package billing

import (
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// Nights returns the number of whole nights between the date parts of
// checkIn and checkOut.  It returns 0 when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	in, out := model.DateOnly(checkIn), model.DateOnly(checkOut)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// ComputeTotal returns nights * nightlyRateCents.
func ComputeTotal(checkIn, checkOut time.Time, nightlyRateCents int64) int64 {
	return int64(Nights(checkIn, checkOut)) * nightlyRateCents
}

// Quote is the breakdown shown to staff before a booking or at check-out.
type Quote struct {
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Nights     int       `json:"nights"`
	RateCents  int64     `json:"rate_cents"`
	TotalCents int64     `json:"total_cents"`
}

// NewQuote builds a Quote.  An invalid range yields zero nights and a zero
// total.
func NewQuote(checkIn, checkOut time.Time, rateCents int64) Quote {
	n := Nights(checkIn, checkOut)
	return Quote{
		CheckIn:    model.DateOnly(checkIn),
		CheckOut:   model.DateOnly(checkOut),
		Nights:     n,
		RateCents:  rateCents,
		TotalCents: int64(n) * rateCents,
	}
}

// Annotate fills the computed Nights and TotalCents of r from its dates and
// the joined room price.
func Annotate(r *model.Reservation) {
	r.Nights = Nights(r.CheckIn, r.CheckOut)
	r.TotalCents = int64(r.Nights) * r.PriceCents
}
