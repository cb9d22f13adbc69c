package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ShowID     string    `json:"show_id"`
	SeatLabels []string  `json:"seat_labels"`
	TotalPrice float64   `json:"total_price"`
	Cancelled  bool      `json:"cancelled"`
	CreatedAt  time.Time `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, seats []*entity.Seat) BookingResponse {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label
	}

	return BookingResponse{
		ID:         booking.ID.String(),
		UserID:     booking.UserID.String(),
		ShowID:     booking.ShowID.String(),
		SeatLabels: labels,
		TotalPrice: booking.TotalPrice,
		Cancelled:  booking.Cancelled,
		CreatedAt:  booking.CreatedAt,
	}
}
