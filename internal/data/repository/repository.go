package repository

import (
	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Theatre    TheatreRepository
	Screen     ScreenRepository
	Seat       SeatRepository
	Movie      MovieRepository
	Show       ShowRepository
	Booking    BookingRepository
	BookedSeat BookedSeatRepository
	SeatLedger SeatLedgerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Theatre:    NewTheatreRepository(db, log),
		Screen:     NewScreenRepository(db, log),
		Seat:       NewSeatRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Show:       NewShowRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		BookedSeat: NewBookedSeatRepository(db, log),
		SeatLedger: NewSeatLedgerRepository(db, log),
	}
}
