package billing

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2024-01-01", "2024-01-04", 3},
		{"2024-01-01", "2024-01-02", 1},
		{"2024-01-05", "2024-01-05", 0},
		{"2024-01-05", "2024-01-01", 0},
		{"2024-02-28", "2024-03-01", 2},
		{"2023-12-31", "2024-01-01", 1},
	}
	for _, c := range cases {
		if got := Nights(day(c.in), day(c.out)); got != c.want {
			t.Errorf("Nights(%s, %s) = %d, want %d", c.in, c.out, got, c.want)
		}
	}
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	in := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	out := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	if got := Nights(in, out); got != 1 {
		t.Fatalf("Nights = %d, want 1", got)
	}
}

func TestComputeTotal(t *testing.T) {
	if got := ComputeTotal(day("2024-01-01"), day("2024-01-04"), 1000); got != 3000 {
		t.Fatalf("3 nights at 1000 = %d, want 3000", got)
	}
	if got := ComputeTotal(day("2024-01-01"), day("2024-01-02"), 1500); got != 1500 {
		t.Fatalf("1 night at 1500 = %d, want 1500", got)
	}
	if got := ComputeTotal(day("2024-01-04"), day("2024-01-01"), 1500); got != 0 {
		t.Fatalf("inverted range total = %d, want 0", got)
	}
}

func TestComputeTotalIsNightsTimesRate(t *testing.T) {
	rate := model.RoomTypeSuite.DefaultRateCents()
	for n := 0; n < 30; n++ {
		in := day("2024-03-01")
		out := in.AddDate(0, 0, n)
		if got, want := ComputeTotal(in, out, rate), int64(n)*rate; got != want {
			t.Fatalf("n=%d: total %d, want %d", n, got, want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	r := model.Reservation{CheckIn: day("2024-01-01"), CheckOut: day("2024-01-04"), PriceCents: 250000}
	Annotate(&r)
	if r.Nights != 3 || r.TotalCents != 750000 {
		t.Fatalf("annotate = %d nights / %d cents", r.Nights, r.TotalCents)
	}
}

func TestNewQuoteInvalidRange(t *testing.T) {
	q := NewQuote(day("2024-01-04"), day("2024-01-01"), 1000)
	if q.Nights != 0 || q.TotalCents != 0 {
		t.Fatalf("quote = %+v", q)
	}
}
