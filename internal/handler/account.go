package handler

import (
	"net/http"

	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// AccountHandler handles the session, profile and contact endpoints.
type AccountHandler struct {
	service  *service.AccountService
	provider string
	logger   *logger.Logger
}

// NewAccountHandler creates a new account handler. provider names the
// active auth strategy.
func NewAccountHandler(svc *service.AccountService, provider string, log *logger.Logger) *AccountHandler {
	return &AccountHandler{service: svc, provider: provider, logger: log}
}

// Session handles GET /api/v1/session
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": h.provider,
		"session":  auth.FromContext(r.Context()),
	})
}

// Me handles GET /api/v1/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "get current user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// MyListings handles GET /api/v1/me/listings
func (h *AccountHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.MyListings(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list my listings", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Contact handles POST /api/v1/contact
func (h *AccountHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Contact(r.Context(), &req); err != nil {
		writeServiceError(w, r, h.logger, "send contact message", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
