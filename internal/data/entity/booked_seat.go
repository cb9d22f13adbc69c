package entity

import "github.com/google/uuid"

// BookedSeat rows are created atomically with their booking and kept
// after cancellation so booking history stays intact.
type BookedSeat struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	SeatID    uuid.UUID `db:"seat_id"`
}
