package entity

import (
	"github.com/google/uuid"
)

// Booking snapshots total_price at creation time; it never changes
// afterwards even if the show's price does. Bookings are flipped to
// cancelled, never hard-deleted.
type Booking struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	ShowID     uuid.UUID `db:"show_id"`
	TotalPrice float64   `db:"total_price"`
	Cancelled  bool      `db:"cancelled"`
}
