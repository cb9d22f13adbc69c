package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookedSeatRepository interface {
	FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Seat, error)
}

type bookedSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookedSeatRepository(db database.PgxIface, log *zap.Logger) BookedSeatRepository {
	return &bookedSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booked_seat")),
	}
}

func (r *bookedSeatRepository) FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT s.id, s.screen_id, s.label, s.row_label, s.col_number, s.created_at
		FROM booked_seats bs
		INNER JOIN seats s ON s.id = bs.seat_id
		WHERE bs.booking_id = $1
		ORDER BY s.row_label, s.col_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seats by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.ScreenID,
			&seat.Label,
			&seat.Row,
			&seat.Col,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}
