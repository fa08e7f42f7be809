package service

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

func TestMessagingService_OpenMarksAllRead(t *testing.T) {
	marked := false
	b := newBackend()
	b.handle("/conversations/c1", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, model.Conversation{ID: "c1", ListingID: "l1", UnreadCount: 2})
	})
	b.handle("/listings/l1", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, model.Listing{ID: "l1", Title: "Vélo"})
	})
	b.handle("/conversations/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []model.Message{{ID: "m1"}, {ID: "m2"}})
	})
	b.handle("/conversations/c1/messages/mark-all-read", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		marked = true
	})
	s := NewMessagingService(b.client(t), testLogger(t))

	thread, err := s.Open(signedIn(), "c1")
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Zero(t, thread.Conversation.UnreadCount)
	require.NotNil(t, thread.Conversation.Listing)
	assert.Equal(t, "Vélo", thread.Conversation.Listing.Title)
	require.Len(t, thread.Messages, 2)
	assert.True(t, thread.Messages[0].IsRead)
}

func TestMessagingService_OpenSurvivesMarkFailure(t *testing.T) {
	b := newBackend()
	b.handle("/conversations/c1", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, model.Conversation{ID: "c1", UnreadCount: 1})
	})
	b.handle("/conversations/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []model.Message{{ID: "m1"}})
	})
	b.handle("/conversations/c1/messages/mark-all-read", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s := NewMessagingService(b.client(t), testLogger(t))

	thread, err := s.Open(signedIn(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, thread.Conversation.UnreadCount)
}

func TestMessagingService_SendValidatesLength(t *testing.T) {
	b := newBackend()
	b.handle("/conversations/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusCreated, model.Message{ID: "m3", Content: "Bonjour"})
	})
	s := NewMessagingService(b.client(t), testLogger(t))

	_, err := s.Send(signedIn(), "c1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Send(signedIn(), "c1", strings.Repeat("é", MaxMessageLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, b.callCount())

	msg, err := s.Send(signedIn(), "c1", " Bonjour ")
	require.NoError(t, err)
	assert.Equal(t, "m3", msg.ID)
}

func TestMessagingService_StartRequiresListing(t *testing.T) {
	b := newBackend()
	s := NewMessagingService(b.client(t), testLogger(t))

	_, err := s.Start(signedIn(), &model.CreateConversationRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
