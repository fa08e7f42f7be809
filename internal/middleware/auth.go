// Package middleware provides HTTP middleware for the web client service.
package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// Auth resolves the request session through provider and stores it in
// the request context. A missing bearer is not an error here; use
// RequireSignedIn on routes that need a user.
func Auth(provider auth.Provider, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer, ok := bearerToken(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			session, err := provider.Authenticate(r.Context(), bearer)
			if err != nil {
				log.Debug("session rejected",
					zap.String("provider", provider.Name()),
					zap.String("correlation_id", GetCorrelationID(r.Context())),
					zap.Error(err),
				)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			setLoggedUser(r.Context(), session.UserID())
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// RequireSignedIn rejects anonymous requests.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).SignedIn {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken returns the Authorization bearer, "" when absent, and
// false when the header is malformed. EventSource clients cannot set
// headers, so an access_token query parameter is accepted on GET.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if r.Method == http.MethodGet {
			return r.URL.Query().Get("access_token"), true
		}
		return "", true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
