package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leboncoincoin/marketplace-web/internal/filter"
	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// maxUploadBytes bounds a multipart upload request.
const maxUploadBytes = 50 << 20

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	service *service.ListingService
	logger  *logger.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(svc *service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{service: svc, logger: log}
}

// List handles GET /api/v1/listings
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	f := filter.FromQuery(r.URL.Query())
	if err := middleware.ValidateQuery(f.Search); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	listings, err := h.service.Browse(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, h.logger, "list listings", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Get handles GET /api/v1/listings/{id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID("listing", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "get listing", err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// BySeller handles GET /api/v1/users/{id}/listings
func (h *ListingHandler) BySeller(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID("user", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	listings, err := h.service.BySeller(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "list seller listings", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Create handles POST /api/v1/listings
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ListingRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, "create listing", err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

// Update handles PUT /api/v1/listings/{id}
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID("listing", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.ListingRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, h.logger, "update listing", err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// Delete handles DELETE /api/v1/listings/{id}. The deletion feedback
// body is optional.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID("listing", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var feedback model.DeleteListingRequest
	if err := decodeJSON(r, &feedback, true); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var fb *model.DeleteListingRequest
	if feedback.Reason != "" {
		fb = &feedback
	}

	if err := h.service.Delete(r.Context(), id, fb); err != nil {
		writeServiceError(w, r, h.logger, "delete listing", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /api/v1/uploads. Files come in the "images" form
// field; "existing" is the number of images already on the listing.
func (h *ListingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	existing, _ := strconv.Atoi(r.FormValue("existing"))
	if existing < 0 {
		existing = 0
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no images provided")
		return
	}

	files := make([]service.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file "+fh.Filename)
			return
		}
		defer f.Close()
		files = append(files, service.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	urls, err := h.service.UploadImages(r.Context(), existing, files)
	if err != nil {
		writeServiceError(w, r, h.logger, "upload images", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"imageUrls": urls})
}
