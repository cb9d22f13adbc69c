package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public browse
	r.Get("/api/theatres", catalogHandler.GetTheatres)
	r.Get("/api/theatres/{id}", catalogHandler.GetTheatreByID)
	r.Get("/api/theatres/{id}/screens", catalogHandler.GetScreensByTheatre)
	r.Get("/api/screens/{id}/seats", catalogHandler.GetSeatsByScreen)

	// Admin management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/admin/theatres", catalogHandler.CreateTheatre)
		r.Put("/api/admin/theatres/{id}", catalogHandler.UpdateTheatre)
		r.Delete("/api/admin/theatres/{id}", catalogHandler.DeleteTheatre)

		r.Post("/api/admin/screens", catalogHandler.CreateScreen)
		r.Put("/api/admin/screens/{id}", catalogHandler.UpdateScreen)
		r.Delete("/api/admin/screens/{id}", catalogHandler.DeleteScreen)

		r.Post("/api/admin/seats", catalogHandler.CreateSeat)
	})
}
