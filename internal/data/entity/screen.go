package entity

import "github.com/google/uuid"

type Screen struct {
	BaseSimple
	TheatreID uuid.UUID `db:"theatre_id"`
	Name      string    `db:"name"`
}
