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

// ShowService covers the movie catalogue and screenings: admin CRUD
// for movies, show creation and deactivation, and the public browse
// endpoints including per-show seat availability.
type ShowService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error

	CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error)
	GetShows(ctx context.Context) ([]response.ShowResponse, error)
	GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error)
	DeactivateShow(ctx context.Context, showID string) error
	GetShowAvailability(ctx context.Context, showID string) (*response.ShowAvailabilityResponse, error)
}

type showService struct {
	repo      *repository.Repository
	seatCache AvailabilityCache
	log       *zap.Logger
}

func NewShowService(repo *repository.Repository, seatCache AvailabilityCache, log *zap.Logger) ShowService {
	return &showService{
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "show")),
	}
}

func (s *showService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	movie := &entity.Movie{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, apperror.Internal("create movie", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *showService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list movies", err)
	}

	resps := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		resps[i] = response.MovieToResponse(movie)
	}
	return resps, nil
}

func (s *showService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid movie ID %s", movieID))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find movie", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *showService) UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid movie ID %s", movieID))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find movie", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.DurationMinutes = req.DurationMinutes

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, apperror.Internal("update movie", err)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *showService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return apperror.InvalidInput(fmt.Sprintf("invalid movie ID %s", movieID))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("find movie", err)
	}
	if movie == nil {
		return apperror.NotFound("movie", movieID)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return apperror.Internal("delete movie", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

func (s *showService) CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, apperror.InvalidInput(utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid movie ID %s", req.MovieID))
	}
	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid screen ID %s", req.ScreenID))
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid start_time %s, expected RFC3339", req.StartTime))
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid end_time %s, expected RFC3339", req.EndTime))
	}
	if !endTime.After(startTime) {
		return nil, apperror.InvalidInput("end_time must be after start_time")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, apperror.Internal("find movie", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", req.MovieID)
	}

	screen, err := s.repo.Screen.FindByID(ctx, screenID)
	if err != nil {
		return nil, apperror.Internal("find screen", err)
	}
	if screen == nil {
		return nil, apperror.NotFound("screen", req.ScreenID)
	}

	now := time.Now()
	show := &entity.Show{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		ScreenID:  screenID,
		StartTime: startTime,
		EndTime:   endTime,
		Price:     req.Price,
		Active:    true,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, apperror.Internal("create show", err)
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("screen_id", req.ScreenID),
		zap.Float64("price", show.Price),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) GetShows(ctx context.Context) ([]response.ShowResponse, error) {
	shows, err := s.repo.Show.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list shows", err)
	}

	resps := make([]response.ShowResponse, 0, len(shows))
	for _, show := range shows {
		resp := response.ShowToResponse(show)
		if movie, err := s.repo.Movie.FindByID(ctx, show.MovieID); err == nil && movie != nil {
			resp.MovieTitle = movie.Title
		}
		resps = append(resps, resp)
	}
	return resps, nil
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid show ID %s", showID))
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find show", err)
	}
	if show == nil {
		return nil, apperror.NotFound("show", showID)
	}

	resp := response.ShowToResponse(show)
	if movie, err := s.repo.Movie.FindByID(ctx, show.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	return &resp, nil
}

// DeactivateShow stops new bookings against the show. Existing
// bookings are untouched and can still be cancelled.
func (s *showService) DeactivateShow(ctx context.Context, showID string) error {
	id, err := uuid.Parse(showID)
	if err != nil {
		return apperror.InvalidInput(fmt.Sprintf("invalid show ID %s", showID))
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("find show", err)
	}
	if show == nil {
		return apperror.NotFound("show", showID)
	}

	if err := s.repo.Show.Deactivate(ctx, id); err != nil {
		return apperror.Internal("deactivate show", err)
	}

	return nil
}

// GetShowAvailability returns every seat of the show's screen with a
// per-show availability flag, served from the cache when fresh.
func (s *showService) GetShowAvailability(ctx context.Context, showID string) (*response.ShowAvailabilityResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, apperror.InvalidInput(fmt.Sprintf("invalid show ID %s", showID))
	}

	var cached response.ShowAvailabilityResponse
	if hit, err := s.seatCache.Get(ctx, id, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		// Cache trouble never blocks the read path.
		s.log.Warn("Seat cache read failed", zap.Error(err), zap.String("show_id", showID))
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find show", err)
	}
	if show == nil {
		return nil, apperror.NotFound("show", showID)
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, show.ScreenID)
	if err != nil {
		return nil, apperror.Internal("list seats", err)
	}

	claimedIDs, err := s.repo.SeatLedger.FindClaimedSeatIDs(ctx, id)
	if err != nil {
		return nil, apperror.Internal("list claimed seats", err)
	}
	claimed := make(map[uuid.UUID]bool, len(claimedIDs))
	for _, seatID := range claimedIDs {
		claimed[seatID] = true
	}

	resp := &response.ShowAvailabilityResponse{
		ShowID: showID,
		Seats:  make([]response.SeatAvailability, len(seats)),
	}
	for i, seat := range seats {
		resp.Seats[i] = response.SeatAvailability{
			SeatResponse: response.SeatToResponse(seat),
			Available:    !claimed[seat.ID],
		}
	}

	if err := s.seatCache.Set(ctx, id, resp); err != nil {
		s.log.Warn("Seat cache write failed", zap.Error(err), zap.String("show_id", showID))
	}

	return resp, nil
}
