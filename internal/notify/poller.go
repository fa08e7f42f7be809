package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

// DefaultInterval is the refresh period of the counters.
const DefaultInterval = 30 * time.Second

// Publisher fans counts out to other processes, e.g. over NATS.
type Publisher interface {
	Publish(ctx context.Context, counts *model.NotificationCounts) error
}

// Poller refreshes the counters of one session on a fixed interval.
type Poller struct {
	fetcher   CountFetcher
	interval  time.Duration
	publisher Publisher
	logger    *logger.Logger
}

// NewPoller creates a poller. publisher may be nil.
func NewPoller(fetcher CountFetcher, interval time.Duration, publisher Publisher, log *logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Poller{
		fetcher:   fetcher,
		interval:  interval,
		publisher: publisher,
		logger:    log,
	}
}

// Run polls immediately, then every interval, passing each result to
// deliver. It returns when ctx is done; no delivery happens afterwards.
func (p *Poller) Run(ctx context.Context, deliver func(*model.NotificationCounts)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if counts, ok := p.Poll(ctx); ok {
			deliver(counts)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll fetches the counters once. It returns false when ctx ended
// during the fetch.
func (p *Poller) Poll(ctx context.Context) (*model.NotificationCounts, bool) {
	counts, err := p.fetcher.Counts(ctx)
	if ctx.Err() != nil {
		return nil, false
	}

	if err != nil {
		metrics.RecordNotificationPoll("partial")
		p.logger.Warn("notification counts incomplete",
			zap.String("user_id", counts.UserID),
			zap.Error(err),
		)
	} else {
		metrics.RecordNotificationPoll("ok")
	}

	// Counts zeroed by a failed fetch are not shared with other processes.
	if err == nil && p.publisher != nil && counts.UserID != "" {
		if err := p.publisher.Publish(ctx, counts); err != nil {
			p.logger.Warn("publish notification counts failed",
				zap.String("user_id", counts.UserID),
				zap.Error(err),
			)
		}
	}

	return counts, true
}
