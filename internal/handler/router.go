package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/location"
	"github.com/leboncoincoin/marketplace-web/internal/middleware"
	natsclient "github.com/leboncoincoin/marketplace-web/internal/nats"
	"github.com/leboncoincoin/marketplace-web/internal/notify"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Logger       *logger.Logger
	Auth         auth.Provider
	Listings     *service.ListingService
	Favorites    *service.FavoriteService
	Messaging    *service.MessagingService
	Account      *service.AccountService
	Categories   *service.CategoryService
	Address      *location.AddressClient
	Counts       notify.CountFetcher
	Publisher    notify.Publisher
	NATS         *natsclient.Client
	PollInterval time.Duration

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the HTTP routes of the service.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}

	health := NewHealthHandler(d.NATS)
	listings := NewListingHandler(d.Listings, log)
	favorites := NewFavoriteHandler(d.Favorites, log)
	conversations := NewConversationHandler(d.Messaging, log)
	messages := NewMessageHandler(d.Messaging, log)
	account := NewAccountHandler(d.Account, d.Auth.Name(), log)
	categories := NewCategoryHandler(d.Categories)
	locations := NewLocationHandler(d.Address, location.DefaultPositionOptions)
	notifications := NewNotificationHandler(d.Counts, d.Publisher, d.PollInterval, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(d.CORSOrigins))

	// Health endpoints (no auth required)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Auth, log))
		if d.RateLimitRequests > 0 {
			r.Use(middleware.RateLimit(d.RateLimitRequests, d.RateLimitWindow))
		}

		// Public
		r.Get("/session", account.Session)
		r.Get("/categories", categories.List)
		r.Get("/categories/guess", categories.Guess)
		r.Post("/filters", categories.Filters)
		r.Get("/locations/search", locations.Search)
		r.Get("/locations/reverse", locations.Reverse)
		r.Get("/locations/current", locations.Current)
		r.Get("/listings", listings.List)
		r.Get("/listings/{id}", listings.Get)
		r.Get("/users/{id}/listings", listings.BySeller)
		r.Get("/favorites/{listingId}/status", favorites.Status)
		r.Get("/notifications", notifications.Counts)
		r.Get("/notifications/stream", notifications.Stream)

		// Signed in
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSignedIn)

			r.Post("/listings", listings.Create)
			r.Put("/listings/{id}", listings.Update)
			r.Delete("/listings/{id}", listings.Delete)
			r.Post("/uploads", listings.Upload)

			r.Get("/favorites", favorites.List)
			r.Post("/favorites/{listingId}/toggle", favorites.Toggle)

			r.Get("/me", account.Me)
			r.Get("/me/listings", account.MyListings)
			r.Post("/contact", account.Contact)

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", conversations.Create)
				r.Get("/", conversations.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", conversations.Get)
					r.Get("/messages", messages.List)
					r.Post("/messages", messages.Send)
				})
			})
		})
	})

	return r
}
