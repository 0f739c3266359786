package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RoomType is the closed set of room categories offered by the hotel.
// Each type carries a default nightly rate that is applied when staff
// create a room without an explicit price.
type RoomType string

const (
	RoomTypeSingle RoomType = "Single Room"
	RoomTypeDouble RoomType = "Double Room"
	RoomTypeSuite  RoomType = "Suite"
)

// MinRoomNumber and MaxRoomNumber bound the numbers staff may assign.
const (
	MinRoomNumber = 1
	MaxRoomNumber = 200
)

var defaultRates = map[RoomType]int64{
	RoomTypeSingle: 150000,
	RoomTypeDouble: 250000,
	RoomTypeSuite:  400000,
}

// DefaultRateCents returns the default nightly rate in cents for the type,
// or 0 for an unknown type.
func (t RoomType) DefaultRateCents() int64 { return defaultRates[t] }

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	_, ok := defaultRates[t]
	return ok
}

// ParseRoomType matches s case-insensitively against the known types.
func ParseRoomType(s string) (RoomType, error) {
	s = strings.TrimSpace(s)
	for t := range defaultRates {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown room type %q", s)
}

// RoomStatus is the occupancy state of a room.  Available and Occupied are
// driven by the reservation lifecycle; Maintenance can only be set by staff.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

// ParseRoomStatus matches s case-insensitively against the known statuses.
func ParseRoomStatus(s string) (RoomStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range []RoomStatus{RoomAvailable, RoomOccupied, RoomMaintenance} {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown room status %q", s)
}

// Room represents a bookable hotel room.  It corresponds to a row in the
// `rooms` table.
//
// Fields:
//
//	ID         - primary key identifier.
//	Number     - unique room number, a string-encoded integer 1..200.
//	Type       - room category (Single Room, Double Room, Suite).
//	Status     - occupancy status; mutated by reservation transitions.
//	PriceCents - nightly rate in cents.
type Room struct {
	ID         uint64     `json:"id"`          // rooms.room_id
	Number     string     `json:"room_number"` // rooms.room_number
	Type       RoomType   `json:"type"`        // rooms.type
	Status     RoomStatus `json:"status"`      // rooms.status
	PriceCents int64      `json:"price_cents"` // rooms.price_cents
}

// ValidRoomNumber reports whether s is an integer within the allowed range.
func ValidRoomNumber(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= MinRoomNumber && n <= MaxRoomNumber
}
