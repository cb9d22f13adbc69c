package entity

import (
	"time"

	"github.com/google/uuid"
)

// Show is a screening of a movie in a screen. Once bookings exist
// against it the only supported mutation is deactivation.
type Show struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	ScreenID  uuid.UUID `db:"screen_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
	Active    bool      `db:"active"`
}
