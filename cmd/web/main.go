// Package main is the entry point for the marketplace web client service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/config"
	"github.com/leboncoincoin/marketplace-web/internal/handler"
	"github.com/leboncoincoin/marketplace-web/internal/llm"
	"github.com/leboncoincoin/marketplace-web/internal/location"
	natsclient "github.com/leboncoincoin/marketplace-web/internal/nats"
	"github.com/leboncoincoin/marketplace-web/internal/notify"
	"github.com/leboncoincoin/marketplace-web/internal/service"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/tracing"
)

// llmTimeout bounds a single category suggestion.
const llmTimeout = 5 * time.Second

func main() {
	cfg := config.Load()

	var log *logger.Logger
	var err error
	if cfg.Env == "development" {
		log, err = logger.NewDevelopment()
	} else {
		log, err = logger.New(cfg.LogLevel)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	log.Info("starting web client service", zap.String("env", cfg.Env))

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "marketplace-web", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// NATS is optional; without it counters are only served over SSE.
	var natsClient *natsclient.Client
	var publisher notify.Publisher
	if cfg.NATSURL != "" {
		natsClient, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer natsClient.Close()

		stream := natsclient.NewNotificationStream(natsClient)
		if err := stream.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure notification stream", zap.Error(err))
			os.Exit(1)
		}
		publisher = stream
	}

	provider := auth.New(auth.Settings{
		PublishableKey: cfg.ClerkPublishableKey,
		JWTSecret:      cfg.IdentityJWTSecret,
	})
	log.Info("auth provider selected", zap.String("provider", provider.Name()))

	backend := api.New(cfg.APIBaseURL, cfg.APITimeout, log)
	address := location.NewAddressClient(cfg.AddressAPIURL, nil, log)

	var suggester service.Suggester
	if cfg.LLMEnabled() {
		client, err := llm.Select(llm.Provider(cfg.DefaultLLM), cfg.AnthropicAPIKey, cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create LLM client, category suggestions use keywords only", zap.Error(err))
		} else {
			log.Info("LLM category suggestions enabled", zap.String("provider", client.Name()))
			suggester = llm.NewCategorySuggester(client, llmTimeout, log)
		}
	}

	router := handler.NewRouter(handler.Deps{
		Logger:            log,
		Auth:              provider,
		Listings:          service.NewListingService(backend, log),
		Favorites:         service.NewFavoriteService(backend, log),
		Messaging:         service.NewMessagingService(backend, log),
		Account:           service.NewAccountService(backend, log),
		Categories:        service.NewCategoryService(suggester),
		Address:           address,
		Counts:            notify.NewBackendCounter(backend),
		Publisher:         publisher,
		NATS:              natsClient,
		PollInterval:      cfg.NotificationPollInterval,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
