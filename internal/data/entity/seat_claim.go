package entity

import "github.com/google/uuid"

// SeatClaim is the seat ledger's row: one per seat currently held by
// an active booking for a show. The unique index on (show_id, seat_id)
// is what makes a double-booking impossible. Claims are inserted when
// a booking claims its seats and deleted on cancellation or rollback.
type SeatClaim struct {
	BaseSimple
	ShowID    uuid.UUID `db:"show_id"`
	SeatID    uuid.UUID `db:"seat_id"`
	BookingID uuid.UUID `db:"booking_id"`
}
