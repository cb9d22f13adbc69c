package usecase

import (
	"movie-booking/internal/data/entity"
	"movie-booking/pkg/apperror"
)

// TotalPrice computes the price of a booking: the show's price at the
// time of booking multiplied by the number of seats. The result is
// snapshotted onto the booking and never recomputed, so later price
// changes do not affect existing bookings.
func TotalPrice(show *entity.Show, seatCount int) (float64, error) {
	if show == nil {
		return 0, apperror.InvalidInput("show is required for pricing")
	}
	if seatCount < 1 {
		return 0, apperror.InvalidInput("at least one seat is required")
	}
	return show.Price * float64(seatCount), nil
}
