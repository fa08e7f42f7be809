package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

// backend is a fake marketplace API that records request counts.
type backend struct {
	mu    sync.Mutex
	mux   *http.ServeMux
	calls int
	auth  []string
}

func newBackend() *backend {
	return &backend{mux: http.NewServeMux()}
}

func (b *backend) handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls++
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	b.mu.Unlock()
	b.mux.ServeHTTP(w, r)
}

func (b *backend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *backend) client(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, testLogger(t))
}

func testLogger(t *testing.T) *logger.Logger {
	return logger.Wrap(zaptest.NewLogger(t))
}

func reply(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// signedIn returns a context carrying the development session.
func signedIn() context.Context {
	s, _ := auth.DevProvider{}.Authenticate(context.Background(), "")
	return auth.WithSession(context.Background(), s)
}
