package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/filter"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

func validRequest() *model.ListingRequest {
	return &model.ListingRequest{
		Title:       "Canapé d'angle gris",
		Description: "Canapé 5 places, très bon état, à venir chercher.",
		Price:       350,
		Location:    "Lyon",
		ImageURLs:   []string{"https://cdn.example.com/c.jpg"},
	}
}

func TestListingService_BrowseAddsPriceLabel(t *testing.T) {
	b := newBackend()
	b.handle("/listings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mobilier", r.URL.Query().Get("category"))
		reply(w, http.StatusOK, []model.Listing{{ID: "1", Price: 10000}, {ID: "2", Price: 1234.56}})
	})
	s := NewListingService(b.client(t), testLogger(t))

	got, err := s.Browse(context.Background(), model.Filter{Category: "Mobilier"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.000", got[0].PriceLabel)
	assert.Equal(t, "1.234,56", got[1].PriceLabel)

	for _, h := range b.auth {
		assert.Empty(t, h)
	}
}

func TestListingService_GetNotFound(t *testing.T) {
	b := newBackend()
	b.handle("/listings/nope", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	s := NewListingService(b.client(t), testLogger(t))

	_, err := s.Get(context.Background(), "nope")
	assert.True(t, api.IsNotFound(err))
}

func TestListingService_CreateWithoutImagesNeverCallsBackend(t *testing.T) {
	b := newBackend()
	s := NewListingService(b.client(t), testLogger(t))

	req := validRequest()
	req.ImageURLs = nil

	_, err := s.Create(signedIn(), req)
	var ve *filter.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, b.callCount())
}

func TestListingService_CreateInfersCategory(t *testing.T) {
	b := newBackend()
	b.handle("/listings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer fake-dev-token", r.Header.Get("Authorization"))
		var body model.ListingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Mobilier", body.Category)
		reply(w, http.StatusCreated, model.Listing{ID: "new", Category: body.Category})
	})
	s := NewListingService(b.client(t), testLogger(t))

	l, err := s.Create(signedIn(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "new", l.ID)
}

func TestListingService_CreateRequiresSession(t *testing.T) {
	b := newBackend()
	s := NewListingService(b.client(t), testLogger(t))

	_, err := s.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, b.callCount())
}

// editableListing serves listing 9 and records the body of the PUT.
func editableListing(b *backend, stored model.Listing, saved *model.ListingRequest) {
	b.handle("/listings/9", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			reply(w, http.StatusOK, stored)
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(saved)
			reply(w, http.StatusOK, model.Listing{ID: "9", Category: saved.Category})
		}
	})
}

func TestListingService_UpdateKeepsStoredImages(t *testing.T) {
	b := newBackend()
	var saved model.ListingRequest
	editableListing(b, model.Listing{ID: "9", Title: "Canapé", Category: "Mobilier", ImageURLs: []string{"old.jpg"}}, &saved)
	s := NewListingService(b.client(t), testLogger(t))

	req := validRequest()
	req.ImageURLs = nil
	_, err := s.Update(signedIn(), "9", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.jpg"}, saved.ImageURLs)
}

func TestListingService_UpdateKeepsLockedCategory(t *testing.T) {
	b := newBackend()
	var saved model.ListingRequest
	editableListing(b, model.Listing{ID: "9", Title: "Vélo de ville", Category: "Vélo"}, &saved)
	s := NewListingService(b.client(t), testLogger(t))

	req := validRequest()
	req.Title = "iPhone offert avec le vélo"
	l, err := s.Update(signedIn(), "9", req)
	require.NoError(t, err)
	assert.Equal(t, "Vélo", saved.Category)
	assert.Equal(t, "Vélo", l.Category)
	assert.Equal(t, "iPhone offert avec le vélo", saved.Title)
}

func TestListingService_UpdateExplicitCategory(t *testing.T) {
	b := newBackend()
	var saved model.ListingRequest
	editableListing(b, model.Listing{ID: "9", Title: "Vélo de ville", Category: "Vélo"}, &saved)
	s := NewListingService(b.client(t), testLogger(t))

	req := validRequest()
	req.Category = "Sport & Loisirs"
	_, err := s.Update(signedIn(), "9", req)
	require.NoError(t, err)
	assert.Equal(t, "Sport & Loisirs", saved.Category)
}

func TestListingService_UpdateMissingListing(t *testing.T) {
	b := newBackend()
	b.handle("/listings/9", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		reply(w, http.StatusNotFound, nil)
	})
	s := NewListingService(b.client(t), testLogger(t))

	_, err := s.Update(signedIn(), "9", validRequest())
	assert.True(t, api.IsNotFound(err))
}

func TestListingService_DeleteRejectsUnknownReason(t *testing.T) {
	b := newBackend()
	s := NewListingService(b.client(t), testLogger(t))

	err := s.Delete(signedIn(), "1", &model.DeleteListingRequest{Reason: "BORED"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, b.callCount())
}

func TestListingService_UploadImages(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
	}))
	t.Cleanup(storage.Close)

	b := newBackend()
	n := 0
	b.handle("/uploads/presigned-url", func(w http.ResponseWriter, r *http.Request) {
		n++
		var req model.PresignedURLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		reply(w, http.StatusOK, model.PresignedURL{
			UploadURL: storage.URL + "/" + req.Filename,
			PublicURL: "https://cdn.example.com/" + req.Filename,
		})
	})
	s := NewListingService(b.client(t), testLogger(t))

	files := []ImageFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("a")},
		{Filename: "b.webp", ContentType: "image/webp", Body: strings.NewReader("b")},
	}
	urls, err := s.UploadImages(signedIn(), 0, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.webp"}, urls)
	assert.Equal(t, 2, n)
}

func TestListingService_UploadImagesLimits(t *testing.T) {
	b := newBackend()
	s := NewListingService(b.client(t), testLogger(t))

	_, err := s.UploadImages(signedIn(), 9, []ImageFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("a")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Body: strings.NewReader("b")},
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = s.UploadImages(signedIn(), 0, []ImageFile{
		{Filename: "doc.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF")},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, b.callCount())
}
