package request

type CreateTheatreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Location string `json:"location" validate:"required,min=1,max=200"`
}

type UpdateTheatreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Location string `json:"location" validate:"required,min=1,max=200"`
}

type CreateScreenRequest struct {
	TheatreID string `json:"theatre_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
}

type UpdateScreenRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type CreateSeatRequest struct {
	ScreenID string `json:"screen_id" validate:"required,uuid"`
	Row      string `json:"row" validate:"required,min=1,max=5"`
	Col      int    `json:"col" validate:"required,min=1"`
}
