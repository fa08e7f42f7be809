package location

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// ErrorCode categorizes a failed position request.
type ErrorCode int

const (
	PermissionDenied ErrorCode = iota + 1
	PositionUnavailable
	Timeout
	Unsupported
)

func (c ErrorCode) String() string {
	switch c {
	case PermissionDenied:
		return "permission denied"
	case PositionUnavailable:
		return "position unavailable"
	case Timeout:
		return "timeout"
	case Unsupported:
		return "geolocation unsupported"
	default:
		return "geolocation error"
	}
}

// PositionError is returned by Geolocator.CurrentPosition.
type PositionError struct {
	Code ErrorCode
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code.String()
}

func (e *PositionError) Unwrap() error { return e.Err }

// PositionOptions mirror the browser geolocation options.
type PositionOptions struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
}

// DefaultPositionOptions is enough precision to find a city.
var DefaultPositionOptions = PositionOptions{
	Timeout:      10 * time.Second,
	MaximumAge:   5 * time.Minute,
	HighAccuracy: false,
}

// PositionSource produces a device position.
type PositionSource interface {
	Position(ctx context.Context, highAccuracy bool) (model.Position, error)
}

// ErrNoFix is the cause reported when no recent position is known.
var ErrNoFix = errors.New("no recent position reported")

// reportedOnly serves clients that push their own fixes with Report.
type reportedOnly struct{}

func (reportedOnly) Position(context.Context, bool) (model.Position, error) {
	return model.Position{}, &PositionError{Code: PositionUnavailable, Err: ErrNoFix}
}

// Geolocator resolves the current position and caches the last fix.
type Geolocator struct {
	source  PositionSource
	opts    PositionOptions
	address *AddressClient
	now     func() time.Time

	mu   sync.Mutex
	last *model.Position
}

// NewGeolocator creates a geolocator. A nil source reports Unsupported.
func NewGeolocator(source PositionSource, address *AddressClient, opts PositionOptions) *Geolocator {
	return &Geolocator{
		source:  source,
		opts:    opts,
		address: address,
		now:     time.Now,
	}
}

// Report stores a fix resolved by the client itself. A zero timestamp
// means now.
func (g *Geolocator) Report(pos model.Position) {
	if pos.Timestamp.IsZero() {
		pos.Timestamp = g.now()
	}
	g.mu.Lock()
	g.last = &pos
	g.mu.Unlock()
}

// Forget drops the cached fix, e.g. after the user revoked access.
func (g *Geolocator) Forget() {
	g.mu.Lock()
	g.last = nil
	g.mu.Unlock()
}

// cached returns the last fix if it is younger than MaximumAge.
func (g *Geolocator) cached() (model.Position, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil || g.opts.MaximumAge <= 0 || g.now().Sub(g.last.Timestamp) >= g.opts.MaximumAge {
		return model.Position{}, false
	}
	return *g.last, true
}

// CurrentPosition returns a cached fix younger than MaximumAge, otherwise
// asks the source under the configured timeout. When ctx is canceled by
// the caller its error is returned as is, not as a PositionError.
func (g *Geolocator) CurrentPosition(ctx context.Context) (model.Position, error) {
	if pos, ok := g.cached(); ok {
		return pos, nil
	}
	if g.source == nil {
		return model.Position{}, &PositionError{Code: Unsupported}
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	type result struct {
		pos model.Position
		err error
	}
	done := make(chan result, 1)
	go func() {
		pos, err := g.source.Position(ctx, g.opts.HighAccuracy)
		done <- result{pos, err}
	}()

	select {
	case <-ctx.Done():
		return model.Position{}, categorize(ctx.Err())
	case r := <-done:
		if r.err != nil {
			return model.Position{}, categorize(r.err)
		}
		g.Report(r.pos)
		return r.pos, nil
	}
}

// CurrentCity resolves the position and reverse-geocodes it. It returns
// nil on any failure.
func (g *Geolocator) CurrentCity(ctx context.Context) *model.CityFromCoordinates {
	pos, err := g.CurrentPosition(ctx)
	if err != nil {
		if g.address != nil && !errors.Is(err, context.Canceled) {
			g.address.logger.Info("current position unavailable", zap.Error(err))
		}
		return nil
	}
	if g.address == nil {
		return nil
	}
	return g.address.CityFromCoordinates(ctx, pos.Latitude, pos.Longitude)
}

func categorize(err error) error {
	var pe *PositionError
	switch {
	case errors.As(err, &pe):
		return pe
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return &PositionError{Code: Timeout, Err: err}
	default:
		return &PositionError{Code: PositionUnavailable, Err: err}
	}
}

// maxTracked bounds the number of clients a Tracker remembers.
const maxTracked = 10000

// Tracker keeps one Geolocator per client, so a fix reported by a client
// is reused until it is older than MaximumAge.
type Tracker struct {
	address *AddressClient
	opts    PositionOptions
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*Geolocator
}

// NewTracker creates a tracker whose geolocators resolve cities through
// address.
func NewTracker(address *AddressClient, opts PositionOptions) *Tracker {
	return &Tracker{
		address: address,
		opts:    opts,
		now:     time.Now,
		clients: make(map[string]*Geolocator),
	}
}

// For returns the geolocator of a client, creating it on first use.
func (t *Tracker) For(key string) *Geolocator {
	t.mu.Lock()
	defer t.mu.Unlock()

	if g, ok := t.clients[key]; ok {
		return g
	}
	if len(t.clients) >= maxTracked {
		t.evictLocked()
	}

	g := NewGeolocator(reportedOnly{}, t.address, t.opts)
	g.now = t.now
	t.clients[key] = g
	return g
}

// evictLocked drops clients without a usable fix, or one arbitrary
// client when every fix is still fresh.
func (t *Tracker) evictLocked() {
	for key, g := range t.clients {
		if _, ok := g.cached(); !ok {
			delete(t.clients, key)
		}
	}
	if len(t.clients) < maxTracked {
		return
	}
	for key := range t.clients {
		delete(t.clients, key)
		return
	}
}
