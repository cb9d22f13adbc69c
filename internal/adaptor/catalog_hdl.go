package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateTheatre handles POST /api/admin/theatres (admin only)
func (h *CatalogHandler) CreateTheatre(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheatreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theatre, err := h.service.CreateTheatre(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", theatre)
}

// GetTheatres handles GET /api/theatres (public)
func (h *CatalogHandler) GetTheatres(w http.ResponseWriter, r *http.Request) {
	theatres, err := h.service.GetTheatres(r.Context())
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", theatres)
}

// GetTheatreByID handles GET /api/theatres/{id} (public)
func (h *CatalogHandler) GetTheatreByID(w http.ResponseWriter, r *http.Request) {
	theatre, err := h.service.GetTheatreByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", theatre)
}

// UpdateTheatre handles PUT /api/admin/theatres/{id} (admin only)
func (h *CatalogHandler) UpdateTheatre(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTheatreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theatre, err := h.service.UpdateTheatre(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", theatre)
}

// DeleteTheatre handles DELETE /api/admin/theatres/{id} (admin only)
func (h *CatalogHandler) DeleteTheatre(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTheatre(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateScreen handles POST /api/admin/screens (admin only)
func (h *CatalogHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screen, err := h.service.CreateScreen(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", screen)
}

// GetScreensByTheatre handles GET /api/theatres/{id}/screens (public)
func (h *CatalogHandler) GetScreensByTheatre(w http.ResponseWriter, r *http.Request) {
	screens, err := h.service.GetScreensByTheatre(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", screens)
}

// UpdateScreen handles PUT /api/admin/screens/{id} (admin only)
func (h *CatalogHandler) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screen, err := h.service.UpdateScreen(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", screen)
}

// DeleteScreen handles DELETE /api/admin/screens/{id} (admin only)
func (h *CatalogHandler) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteScreen(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateSeat handles POST /api/admin/seats (admin only)
func (h *CatalogHandler) CreateSeat(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	seat, err := h.service.CreateSeat(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", seat)
}

// GetSeatsByScreen handles GET /api/screens/{id}/seats (public)
func (h *CatalogHandler) GetSeatsByScreen(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetSeatsByScreen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}
