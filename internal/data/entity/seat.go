package entity

import "github.com/google/uuid"

// Seat belongs to exactly one screen; (screen_id, label) is unique.
// Availability is never stored on the seat itself, it is derived
// per show from the seat ledger.
type Seat struct {
	BaseSimple
	ScreenID uuid.UUID `db:"screen_id"`
	Label    string    `db:"label"` // A1, A2, B1, etc.
	Row      string    `db:"row_label"`
	Col      int       `db:"col_number"`
}
