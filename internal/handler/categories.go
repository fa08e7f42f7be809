package handler

import (
	"errors"
	"net/http"

	"github.com/leboncoincoin/marketplace-web/internal/filter"
	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/service"
)

// CategoryHandler handles category and filter endpoints.
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

// Guess handles GET /api/v1/categories/guess?q=
func (h *CategoryHandler) Guess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := middleware.ValidateQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.Guess(r.Context(), q))
}

// Filter actions accepted by POST /api/v1/filters.
const (
	ActionSearch   = "search"
	ActionCategory = "category"
	ActionLocation = "location"
	ActionPrice    = "price"
	ActionReset    = "reset"
)

// FilterRequest is one transition applied to the browser's filter state.
type FilterRequest struct {
	Filter   model.Filter `json:"filter"`
	Locked   bool         `json:"categoryLocked"`
	Action   string       `json:"action"`
	Value    string       `json:"value,omitempty"`
	MinPrice *float64     `json:"minPrice,omitempty"`
	MaxPrice *float64     `json:"maxPrice,omitempty"`
}

// FilterResponse is the filter state after the transition.
type FilterResponse struct {
	Filter model.Filter `json:"filter"`
	Locked bool         `json:"categoryLocked"`
	Query  string       `json:"query"`
}

// Filters handles POST /api/v1/filters
func (h *CategoryHandler) Filters(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state := filter.Restore(req.Filter, req.Locked)

	var err error
	switch req.Action {
	case ActionSearch:
		if err = middleware.ValidateQuery(req.Value); err == nil {
			state.SetSearch(req.Value)
		}
	case ActionCategory:
		err = state.SelectCategory(req.Value)
	case ActionLocation:
		state.SetLocation(req.Value)
	case ActionPrice:
		err = state.SetPriceRange(req.MinPrice, req.MaxPrice)
	case ActionReset:
		state.Reset()
	default:
		err = errors.New("unknown filter action")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f := state.Current()
	writeJSON(w, http.StatusOK, FilterResponse{
		Filter: f,
		Locked: state.Locked(),
		Query:  filter.Query(f).Encode(),
	})
}
