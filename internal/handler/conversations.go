// Package handler provides HTTP handlers for the web client service.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	service *service.MessagingService
	logger  *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(svc *service.MessagingService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: svc,
		logger:  log,
	}
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateConversationRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.service.Start(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, "create conversation", err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	convs, err := h.service.Conversations(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, "list conversations", err)
		return
	}

	writeJSON(w, http.StatusOK, convs)
}

// Get handles GET /api/v1/conversations/{id}. Opening a conversation
// marks its messages read.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID("conversation", id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	thread, err := h.service.Open(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, "open conversation", err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}
