package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/leboncoincoin/marketplace-web/internal/api"
	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) Counts(context.Context) (*model.NotificationCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &model.NotificationCounts{UserID: "u1", Favorites: f.calls}, nil
}

type recordingPublisher struct {
	mu  sync.Mutex
	got []*model.NotificationCounts
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, c *model.NotificationCounts) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, c)
	return p.err
}

func signedIn() context.Context {
	s, _ := auth.DevProvider{}.Authenticate(context.Background(), "")
	return auth.WithSession(context.Background(), s)
}

func TestPoller_FirstPollImmediateAndStopsOnCancel(t *testing.T) {
	f := &countingFetcher{}
	pub := &recordingPublisher{}
	p := NewPoller(f, time.Hour, pub, logger.Wrap(zaptest.NewLogger(t)))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *model.NotificationCounts, 4)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, func(c *model.NotificationCounts) { got <- c })
		close(done)
	}()

	select {
	case c := <-got:
		assert.Equal(t, 1, c.Favorites)
	case <-time.After(time.Second):
		t.Fatal("first poll did not happen immediately")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}

	pub.mu.Lock()
	assert.Len(t, pub.got, 1)
	pub.mu.Unlock()
}

func TestPoller_Ticks(t *testing.T) {
	f := &countingFetcher{}
	p := NewPoller(f, 10*time.Millisecond, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *model.NotificationCounts, 16)
	go p.Run(ctx, func(c *model.NotificationCounts) { got <- c })

	for want := 1; want <= 3; want++ {
		select {
		case c := <-got:
			assert.Equal(t, want, c.Favorites)
		case <-time.After(time.Second):
			t.Fatalf("poll %d missing", want)
		}
	}
}

func TestPoller_PublishErrorDoesNotStopDelivery(t *testing.T) {
	p := NewPoller(&countingFetcher{}, time.Hour, &recordingPublisher{err: errors.New("nats down")}, nil)
	c, ok := p.Poll(context.Background())
	require.True(t, ok)
	assert.Equal(t, "u1", c.UserID)
}

type failingFetcher struct{}

func (failingFetcher) Counts(context.Context) (*model.NotificationCounts, error) {
	return &model.NotificationCounts{UserID: "victim"}, errors.New("backend rejected token")
}

func TestPoller_FailedFetchIsDeliveredButNotPublished(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewPoller(failingFetcher{}, time.Hour, pub, nil)

	c, ok := p.Poll(context.Background())
	require.True(t, ok)
	assert.Zero(t, c.Favorites)
	assert.Zero(t, c.UnreadMessages)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Empty(t, pub.got)
}

func TestPoller_PublishesSuccessfulFetch(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewPoller(&countingFetcher{}, time.Hour, pub, nil)

	_, ok := p.Poll(context.Background())
	require.True(t, ok)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.got, 1)
	assert.Equal(t, "u1", pub.got[0].UserID)
}

func TestPoller_NoDeliveryAfterCancel(t *testing.T) {
	p := NewPoller(&countingFetcher{}, time.Hour, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := p.Poll(ctx)
	assert.False(t, ok)
}

func newCounter(t *testing.T, mux *http.ServeMux) *BackendCounter {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewBackendCounter(api.New(srv.URL, time.Second, nil))
}

func TestBackendCounter_SumsUnread(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/favorites", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"f1"},{"id":"f2"}]`))
	})
	mux.HandleFunc("/conversations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"c1","unreadCount":2},{"id":"c2","unreadCount":0},{"id":"c3","unreadCount":3}]`))
	})

	c, err := newCounter(t, mux).Counts(signedIn())
	require.NoError(t, err)
	assert.Equal(t, auth.DevUserID, c.UserID)
	assert.Equal(t, 2, c.Favorites)
	assert.Equal(t, 5, c.UnreadMessages)
}

func TestBackendCounter_ConversationFailureZerosUnread(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/favorites", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"f1"}]`))
	})
	mux.HandleFunc("/conversations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, err := newCounter(t, mux).Counts(signedIn())
	require.Error(t, err)
	assert.Equal(t, 1, c.Favorites)
	assert.Zero(t, c.UnreadMessages)
}

func TestBackendCounter_FavoritesFailureZerosAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/favorites", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, err := newCounter(t, mux).Counts(signedIn())
	require.Error(t, err)
	assert.Zero(t, c.Favorites)
	assert.Zero(t, c.UnreadMessages)
}

func TestBackendCounter_Anonymous(t *testing.T) {
	c, err := newCounter(t, http.NewServeMux()).Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, c.Favorites)
	assert.Empty(t, c.UserID)
}
