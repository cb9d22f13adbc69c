package request

type CreateBookingRequest struct {
	ShowID  string   `json:"show_id" validate:"required,uuid"`
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,uuid"`
}
