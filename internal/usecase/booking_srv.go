package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperror"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	seatCache AvailabilityCache
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, seatCache AvailabilityCache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking runs the whole booking sequence: validate the request,
// check the show and seats, claim the seats in the ledger, snapshot
// the price, and persist the booking. If persisting fails after the
// claim succeeded, the claim is released again so the seats do not
// stay blocked by a booking that never existed.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid user ID %s", userID))
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid show ID %s", req.ShowID))
	}

	seatIDs := make([]uuid.UUID, len(req.SeatIDs))
	seen := make(map[uuid.UUID]bool, len(req.SeatIDs))
	for i, seatIDStr := range req.SeatIDs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, apperror.InvalidInput(fmt.Sprintf("invalid seat ID %s", seatIDStr))
		}
		if seen[seatID] {
			return nil, apperror.InvalidInput(fmt.Sprintf("duplicate seat ID %s", seatIDStr))
		}
		seen[seatID] = true
		seatIDs[i] = seatID
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, apperror.Internal("find show", err)
	}
	if show == nil {
		return nil, apperror.NotFound("show", req.ShowID)
	}
	if !show.Active {
		return nil, apperror.ShowInactive(showID)
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, apperror.Internal("load seats", err)
	}
	seatByID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		seatByID[seat.ID] = seat
	}
	for _, seatID := range seatIDs {
		seat, ok := seatByID[seatID]
		if !ok {
			return nil, apperror.NotFound("seat", seatID.String())
		}
		if seat.ScreenID != show.ScreenID {
			return nil, apperror.SeatWrongScreen(seatID)
		}
	}

	bookingID := uuid.New()

	conflicts, err := s.repo.SeatLedger.TryClaim(ctx, showID, seatIDs, bookingID)
	if err != nil {
		return nil, apperror.TransientStore("claim seats", err)
	}
	if len(conflicts) > 0 {
		return nil, apperror.SeatsUnavailable(conflicts)
	}

	totalPrice, err := TotalPrice(show, len(seatIDs))
	if err != nil {
		s.releaseClaim(ctx, showID, seatIDs)
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        bookingID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userUUID,
		ShowID:     showID,
		TotalPrice: totalPrice,
	}

	bookedSeats := make([]*entity.BookedSeat, len(seatIDs))
	for i, seatID := range seatIDs {
		bookedSeats[i] = &entity.BookedSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID: bookingID,
			SeatID:    seatID,
		}
	}

	if err := s.repo.Booking.CreateWithSeats(ctx, booking, bookedSeats); err != nil {
		s.log.Error("Failed to persist booking, releasing claimed seats",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("show_id", req.ShowID),
		)
		s.releaseClaim(ctx, showID, seatIDs)
		return nil, apperror.TransientStore("persist booking", err)
	}

	if err := s.seatCache.InvalidateShow(ctx, showID); err != nil {
		s.log.Warn("Seat cache invalidation failed",
			zap.Error(err),
			zap.String("show_id", req.ShowID),
		)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID),
		zap.String("show_id", req.ShowID),
		zap.Int("seat_count", len(seatIDs)),
		zap.Float64("total_price", totalPrice),
	)

	orderedSeats := make([]*entity.Seat, len(seatIDs))
	for i, seatID := range seatIDs {
		orderedSeats[i] = seatByID[seatID]
	}

	resp := response.BookingToResponse(booking, orderedSeats)
	return &resp, nil
}

// CancelBooking flips the booking to cancelled and frees its seat
// claims; the flag flip and the claim deletion commit as one
// transaction, so a failed cancel leaves the booking fully active and
// a successful one never strands claims. Cancelling twice fails with
// ALREADY_CANCELLED; when two cancels race, the conditional update
// lets exactly one of them win. The booked seat rows stay so history
// keeps showing what was booked.
func (s *bookingService) CancelBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid booking ID %s", bookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking", bookingID)
	}

	if !isAdmin && booking.UserID.String() != userID {
		return nil, apperror.Forbidden("booking belongs to another user")
	}

	// Load the seats before mutating anything, so any failure up to
	// here leaves the booking untouched and the cancel retryable.
	seats, err := s.repo.BookedSeat.FindSeatsByBookingID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("load booked seats", err)
	}

	won, err := s.repo.Booking.CancelAndRelease(ctx, id)
	if err != nil {
		return nil, apperror.TransientStore("cancel booking", err)
	}
	if !won {
		return nil, apperror.AlreadyCancelled(id)
	}

	if err := s.seatCache.InvalidateShow(ctx, booking.ShowID); err != nil {
		s.log.Warn("Seat cache invalidation failed",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.Int("seats_released", len(seats)),
	)

	booking.Cancelled = true
	booking.UpdatedAt = time.Now()

	resp := response.BookingToResponse(booking, seats)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid booking ID %s", bookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking", bookingID)
	}

	if !isAdmin && booking.UserID.String() != userID {
		return nil, apperror.Forbidden("booking belongs to another user")
	}

	seats, err := s.repo.BookedSeat.FindSeatsByBookingID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("load booked seats", err)
	}

	resp := response.BookingToResponse(booking, seats)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid user ID %s", userID))
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("list user bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, apperror.Internal("count user bookings", err)
	}

	return s.buildBookingPage(ctx, bookings, req, total)
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("list bookings", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, apperror.Internal("count bookings", err)
	}

	return s.buildBookingPage(ctx, bookings, req, total)
}

func (s *bookingService) buildBookingPage(ctx context.Context, bookings []*entity.Booking, req *request.PaginatedRequest, total int64) (*response.PaginatedResponse[response.BookingResponse], error) {
	resps := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		seats, err := s.repo.BookedSeat.FindSeatsByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, apperror.Internal("load booked seats", err)
		}
		resps[i] = response.BookingToResponse(booking, seats)
	}

	return response.NewPaginatedResponse(resps, req.Page, req.PerPage, total), nil
}

func (s *bookingService) releaseClaim(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) {
	if err := s.repo.SeatLedger.Release(ctx, showID, seatIDs); err != nil {
		s.log.Error("Compensating seat release failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
	}
}
