package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

type ShowResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	ScreenID   string    `json:"screen_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Price      float64   `json:"price"`
	Active     bool      `json:"active"`
}

// ShowAvailabilityResponse lists every seat of the show's screen with
// its availability for this specific show.
type ShowAvailabilityResponse struct {
	ShowID string             `json:"show_id"`
	Seats  []SeatAvailability `json:"seats"`
}

type SeatAvailability struct {
	SeatResponse
	Available bool `json:"available"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Description:     movie.Description,
		DurationMinutes: movie.DurationMinutes,
		CreatedAt:       movie.CreatedAt,
	}
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:        show.ID.String(),
		MovieID:   show.MovieID.String(),
		ScreenID:  show.ScreenID.String(),
		StartTime: show.StartTime,
		EndTime:   show.EndTime,
		Price:     show.Price,
		Active:    show.Active,
	}
}
