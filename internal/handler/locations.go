package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/httprate"

	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/location"
	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// LocationHandler handles location autocomplete and geolocation.
type LocationHandler struct {
	address *location.AddressClient
	tracker *location.Tracker
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(address *location.AddressClient, opts location.PositionOptions) *LocationHandler {
	return &LocationHandler{
		address: address,
		tracker: location.NewTracker(address, opts),
	}
}

// Search handles GET /api/v1/locations/search?q=&limit=
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := middleware.ValidateQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 20 {
		limit = 20
	}

	writeJSON(w, http.StatusOK, h.address.SearchLocations(r.Context(), q, limit))
}

// Reverse handles GET /api/v1/locations/reverse?lat=&lon=
func (h *LocationHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinates(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	city := h.address.CityFromCoordinates(r.Context(), lat, lon)
	if city == nil {
		writeError(w, http.StatusNotFound, "no city found")
		return
	}
	writeJSON(w, http.StatusOK, city)
}

// Current handles GET /api/v1/locations/current. The browser forwards
// a fresh device fix as lat/lon, or denied=1 when the user refused
// access. Without either, a fix reported in the last MaximumAge is reused.
func (h *LocationHandler) Current(w http.ResponseWriter, r *http.Request) {
	geo := h.tracker.For(clientKey(r))

	lat, lon, ok := coordinates(r)
	switch {
	case r.URL.Query().Get("denied") == "1":
		geo.Forget()
		denied := &location.PositionError{Code: location.PermissionDenied}
		writeJSON(w, http.StatusOK, map[string]interface{}{"city": nil, "error": denied.Error()})
		return
	case ok:
		geo.Report(model.Position{Latitude: lat, Longitude: lon})
	}

	if _, err := geo.CurrentPosition(r.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"city": nil, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"city": geo.CurrentCity(r.Context())})
}

// clientKey identifies the browser session a fix belongs to.
func clientKey(r *http.Request) string {
	if userID := auth.FromContext(r.Context()).UserID(); userID != "" {
		return "user:" + userID
	}
	ip, err := httprate.KeyByIP(r)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + ip
}

func coordinates(r *http.Request) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
