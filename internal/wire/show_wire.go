package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShow(
	r chi.Router,
	showHandler *adaptor.ShowHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public browse
	r.Get("/api/movies", showHandler.GetMovies)
	r.Get("/api/movies/{id}", showHandler.GetMovieByID)
	r.Get("/api/shows", showHandler.GetShows)
	r.Get("/api/shows/{id}", showHandler.GetShowByID)
	r.Get("/api/shows/{id}/seats", showHandler.GetShowAvailability)

	// Admin management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/admin/movies", showHandler.CreateMovie)
		r.Put("/api/admin/movies/{id}", showHandler.UpdateMovie)
		r.Delete("/api/admin/movies/{id}", showHandler.DeleteMovie)

		r.Post("/api/admin/shows", showHandler.CreateShow)
		r.Put("/api/admin/shows/{id}/deactivate", showHandler.DeactivateShow)
	})
}
