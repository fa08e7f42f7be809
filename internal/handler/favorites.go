package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// FavoriteHandler handles favorites endpoints.
type FavoriteHandler struct {
	service *service.FavoriteService
	logger  *logger.Logger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(svc *service.FavoriteService, log *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: svc, logger: log}
}

// List handles GET /api/v1/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.Listings(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list favorites", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Toggle handles POST /api/v1/favorites/{listingId}/toggle
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listingId")
	if err := middleware.ValidateID("listing", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fav, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "toggle favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, model.FavoriteStatus{IsFavorited: fav})
}

// Status handles GET /api/v1/favorites/{listingId}/status
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listingId")
	if err := middleware.ValidateID("listing", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fav, err := h.service.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "get favorite status", err)
		return
	}
	writeJSON(w, http.StatusOK, model.FavoriteStatus{IsFavorited: fav})
}
