package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type TheatreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type ScreenResponse struct {
	ID        string    `json:"id"`
	TheatreID string    `json:"theatre_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SeatResponse struct {
	ID       string `json:"id"`
	ScreenID string `json:"screen_id"`
	Label    string `json:"label"`
	Row      string `json:"row"`
	Col      int    `json:"col"`
}

func TheatreToResponse(theatre *entity.Theatre) TheatreResponse {
	return TheatreResponse{
		ID:        theatre.ID.String(),
		Name:      theatre.Name,
		Location:  theatre.Location,
		CreatedAt: theatre.CreatedAt,
	}
}

func ScreenToResponse(screen *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:        screen.ID.String(),
		TheatreID: screen.TheatreID.String(),
		Name:      screen.Name,
		CreatedAt: screen.CreatedAt,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:       seat.ID.String(),
		ScreenID: seat.ScreenID.String(),
		Label:    seat.Label,
		Row:      seat.Row,
		Col:      seat.Col,
	}
}
