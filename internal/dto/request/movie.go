package request

type CreateMovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1"`
}

type UpdateMovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1"`
}

type CreateShowRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid"`
	ScreenID  string  `json:"screen_id" validate:"required,uuid"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}
