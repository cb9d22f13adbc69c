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

// CatalogService covers the admin-managed venue hierarchy: theatres,
// their screens, and the seats inside each screen.
type CatalogService interface {
	CreateTheatre(ctx context.Context, req *request.CreateTheatreRequest) (*response.TheatreResponse, error)
	GetTheatres(ctx context.Context) ([]response.TheatreResponse, error)
	GetTheatreByID(ctx context.Context, theatreID string) (*response.TheatreResponse, error)
	UpdateTheatre(ctx context.Context, theatreID string, req *request.UpdateTheatreRequest) (*response.TheatreResponse, error)
	DeleteTheatre(ctx context.Context, theatreID string) error

	CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error)
	GetScreensByTheatre(ctx context.Context, theatreID string) ([]response.ScreenResponse, error)
	UpdateScreen(ctx context.Context, screenID string, req *request.UpdateScreenRequest) (*response.ScreenResponse, error)
	DeleteScreen(ctx context.Context, screenID string) error

	CreateSeat(ctx context.Context, req *request.CreateSeatRequest) (*response.SeatResponse, error)
	GetSeatsByScreen(ctx context.Context, screenID string) ([]response.SeatResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateTheatre(ctx context.Context, req *request.CreateTheatreRequest) (*response.TheatreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theatre validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	theatre := &entity.Theatre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Theatre.Create(ctx, theatre); err != nil {
		return nil, apperror.Internal("create theatre", err)
	}

	s.log.Info("Theatre created",
		zap.String("theatre_id", theatre.ID.String()),
		zap.String("name", theatre.Name),
	)

	resp := response.TheatreToResponse(theatre)
	return &resp, nil
}

func (s *catalogService) GetTheatres(ctx context.Context) ([]response.TheatreResponse, error) {
	theatres, err := s.repo.Theatre.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list theatres", err)
	}

	resps := make([]response.TheatreResponse, len(theatres))
	for i, theatre := range theatres {
		resps[i] = response.TheatreToResponse(theatre)
	}
	return resps, nil
}

func (s *catalogService) GetTheatreByID(ctx context.Context, theatreID string) (*response.TheatreResponse, error) {
	id, err := uuid.Parse(theatreID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid theatre ID %s", theatreID))
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find theatre", err)
	}
	if theatre == nil {
		return nil, apperror.NotFound("theatre", theatreID)
	}

	resp := response.TheatreToResponse(theatre)
	return &resp, nil
}

func (s *catalogService) UpdateTheatre(ctx context.Context, theatreID string, req *request.UpdateTheatreRequest) (*response.TheatreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update theatre validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(theatreID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid theatre ID %s", theatreID))
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find theatre", err)
	}
	if theatre == nil {
		return nil, apperror.NotFound("theatre", theatreID)
	}

	theatre.Name = req.Name
	theatre.Location = req.Location

	if err := s.repo.Theatre.Update(ctx, theatre); err != nil {
		return nil, apperror.Internal("update theatre", err)
	}

	resp := response.TheatreToResponse(theatre)
	return &resp, nil
}

func (s *catalogService) DeleteTheatre(ctx context.Context, theatreID string) error {
	id, err := uuid.Parse(theatreID)
	if err != nil {
		return apperror.InvalidInput(fmt.Sprintf("invalid theatre ID %s", theatreID))
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("find theatre", err)
	}
	if theatre == nil {
		return apperror.NotFound("theatre", theatreID)
	}

	if err := s.repo.Theatre.Delete(ctx, id); err != nil {
		return apperror.Internal("delete theatre", err)
	}

	s.log.Info("Theatre deleted", zap.String("theatre_id", theatreID))
	return nil
}

func (s *catalogService) CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screen validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	theatreID, err := uuid.Parse(req.TheatreID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid theatre ID %s", req.TheatreID))
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, theatreID)
	if err != nil {
		return nil, apperror.Internal("find theatre", err)
	}
	if theatre == nil {
		return nil, apperror.NotFound("theatre", req.TheatreID)
	}

	screen := &entity.Screen{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TheatreID: theatreID,
		Name:      req.Name,
	}

	if err := s.repo.Screen.Create(ctx, screen); err != nil {
		return nil, apperror.Internal("create screen", err)
	}

	s.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.String("theatre_id", req.TheatreID),
	)

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func (s *catalogService) GetScreensByTheatre(ctx context.Context, theatreID string) ([]response.ScreenResponse, error) {
	id, err := uuid.Parse(theatreID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid theatre ID %s", theatreID))
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find theatre", err)
	}
	if theatre == nil {
		return nil, apperror.NotFound("theatre", theatreID)
	}

	screens, err := s.repo.Screen.FindByTheatreID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("list screens", err)
	}

	resps := make([]response.ScreenResponse, len(screens))
	for i, screen := range screens {
		resps[i] = response.ScreenToResponse(screen)
	}
	return resps, nil
}

func (s *catalogService) UpdateScreen(ctx context.Context, screenID string, req *request.UpdateScreenRequest) (*response.ScreenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screen validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(screenID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid screen ID %s", screenID))
	}

	screen, err := s.repo.Screen.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find screen", err)
	}
	if screen == nil {
		return nil, apperror.NotFound("screen", screenID)
	}

	screen.Name = req.Name

	if err := s.repo.Screen.Update(ctx, screen); err != nil {
		return nil, apperror.Internal("update screen", err)
	}

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func (s *catalogService) DeleteScreen(ctx context.Context, screenID string) error {
	id, err := uuid.Parse(screenID)
	if err != nil {
		return apperror.InvalidInput(fmt.Sprintf("invalid screen ID %s", screenID))
	}

	screen, err := s.repo.Screen.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("find screen", err)
	}
	if screen == nil {
		return apperror.NotFound("screen", screenID)
	}

	if err := s.repo.Screen.Delete(ctx, id); err != nil {
		return apperror.Internal("delete screen", err)
	}

	s.log.Info("Screen deleted", zap.String("screen_id", screenID))
	return nil
}

func (s *catalogService) CreateSeat(ctx context.Context, req *request.CreateSeatRequest) (*response.SeatResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create seat validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid screen ID %s", req.ScreenID))
	}

	screen, err := s.repo.Screen.FindByID(ctx, screenID)
	if err != nil {
		return nil, apperror.Internal("find screen", err)
	}
	if screen == nil {
		return nil, apperror.NotFound("screen", req.ScreenID)
	}

	seat := &entity.Seat{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ScreenID: screenID,
		Label:    fmt.Sprintf("%s%d", req.Row, req.Col),
		Row:      req.Row,
		Col:      req.Col,
	}

	if err := s.repo.Seat.Create(ctx, seat); err != nil {
		// The unique (screen_id, label) index turns a duplicate into
		// an insert error.
		return nil, apperror.Conflict(fmt.Sprintf("seat %s already exists in this screen", seat.Label))
	}

	s.log.Info("Seat created",
		zap.String("seat_id", seat.ID.String()),
		zap.String("screen_id", req.ScreenID),
		zap.String("label", seat.Label),
	)

	resp := response.SeatToResponse(seat)
	return &resp, nil
}

func (s *catalogService) GetSeatsByScreen(ctx context.Context, screenID string) ([]response.SeatResponse, error) {
	id, err := uuid.Parse(screenID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid screen ID %s", screenID))
	}

	screen, err := s.repo.Screen.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find screen", err)
	}
	if screen == nil {
		return nil, apperror.NotFound("screen", screenID)
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("list seats", err)
	}

	resps := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		resps[i] = response.SeatToResponse(seat)
	}
	return resps, nil
}
