package service

import (
	"net/mail"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// NextRoomNumber suggests the number for a new room given the numbers in
// use: one past the highest, or the lowest free number when the highest
// is already the maximum.  When every number is taken it returns the
// maximum, which the uniqueness check will then reject.
func NextRoomNumber(taken []int) string {
	if len(taken) == 0 {
		return strconv.Itoa(model.MinRoomNumber)
	}
	sorted := append([]int(nil), taken...)
	sort.Ints(sorted)
	if hi := sorted[len(sorted)-1]; hi < model.MaxRoomNumber {
		if hi < model.MinRoomNumber {
			return strconv.Itoa(model.MinRoomNumber)
		}
		return strconv.Itoa(hi + 1)
	}
	used := make(map[int]bool, len(sorted))
	for _, n := range sorted {
		used[n] = true
	}
	for n := model.MinRoomNumber; n <= model.MaxRoomNumber; n++ {
		if !used[n] {
			return strconv.Itoa(n)
		}
	}
	return strconv.Itoa(model.MaxRoomNumber)
}

// NormalizeGuest trims g and checks the required fields and e-mail.
func NormalizeGuest(g *model.Guest) error {
	g.Name = strings.TrimSpace(g.Name)
	g.ContactNumber = strings.TrimSpace(g.ContactNumber)
	g.Email = strings.TrimSpace(g.Email)
	if g.Name == "" {
		return invalid("guest name is required")
	}
	if g.ContactNumber == "" {
		return invalid("contact number is required")
	}
	if g.Email != "" {
		if _, err := mail.ParseAddress(g.Email); err != nil {
			return invalid("invalid e-mail address %q", g.Email)
		}
	}
	return nil
}

// NormalizeRoom checks number, type and status and fills the default rate
// of the type when no price is given.
func NormalizeRoom(rm *model.Room) error {
	rm.Number = strings.TrimSpace(rm.Number)
	if !model.ValidRoomNumber(rm.Number) {
		return invalid("room number must be a whole number between %d and %d", model.MinRoomNumber, model.MaxRoomNumber)
	}
	n, _ := strconv.Atoi(rm.Number)
	rm.Number = strconv.Itoa(n)
	t, err := model.ParseRoomType(string(rm.Type))
	if err != nil {
		return invalid("%v", err)
	}
	rm.Type = t
	if rm.Status == "" {
		rm.Status = model.RoomAvailable
	}
	st, err := model.ParseRoomStatus(string(rm.Status))
	if err != nil {
		return invalid("%v", err)
	}
	rm.Status = st
	if rm.PriceCents < 0 {
		return invalid("price must not be negative")
	}
	if rm.PriceCents == 0 {
		rm.PriceCents = t.DefaultRateCents()
	}
	return nil
}
