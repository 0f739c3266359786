package model

// Guest is a person staying at the hotel.  Guests are created and edited
// by staff and referenced by reservations.  This struct corresponds to a
// row in the `guests` table.
//
// Fields:
//
//	ID            - primary key identifier.
//	Name          - full name; required.
//	ContactNumber - phone number; required.
//	Email         - optional e-mail address.
type Guest struct {
	ID            uint64 `json:"id"`             // guests.guest_id
	Name          string `json:"name"`           // guests.name
	ContactNumber string `json:"contact_number"` // guests.contact_number
	Email         string `json:"email"`          // guests.email
}
