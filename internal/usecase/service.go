package usecase

import (
	"context"

	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityCache is the slice of the seat cache the services need.
// Satisfied by *cache.SeatCache.
type AvailabilityCache interface {
	Get(ctx context.Context, showID uuid.UUID, dest any) (bool, error)
	Set(ctx context.Context, showID uuid.UUID, value any) error
	InvalidateShow(ctx context.Context, showID uuid.UUID) error
}

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Show    ShowService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, seatCache AvailabilityCache, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Catalog: NewCatalogService(repo, log),
		Show:    NewShowService(repo, seatCache, log),
		Booking: NewBookingService(repo, seatCache, log),
	}
}
