package entity

type Theatre struct {
	BaseSimple
	Name     string `db:"name"`
	Location string `db:"location"`
}
