package entity

type Movie struct {
	BaseSimple
	Title           string  `db:"title"`
	Description     *string `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
}
