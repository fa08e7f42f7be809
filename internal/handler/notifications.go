package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/auth"
	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/internal/notify"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

// HeartbeatInterval is how often an idle stream sends a heartbeat.
const HeartbeatInterval = 30 * time.Second

// NotificationHandler serves the favorites and unread-message counters.
type NotificationHandler struct {
	fetcher   notify.CountFetcher
	publisher notify.Publisher
	interval  time.Duration
	heartbeat time.Duration
	logger    *logger.Logger
}

// NewNotificationHandler creates a notification handler. publisher may
// be nil.
func NewNotificationHandler(fetcher notify.CountFetcher, publisher notify.Publisher, interval time.Duration, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		fetcher:   fetcher,
		publisher: publisher,
		interval:  interval,
		heartbeat: HeartbeatInterval,
		logger:    log,
	}
}

// Counts handles GET /api/v1/notifications
func (h *NotificationHandler) Counts(w http.ResponseWriter, r *http.Request) {
	poller := notify.NewPoller(h.fetcher, h.interval, h.publisher, h.logger)
	counts, ok := poller.Poll(r.Context())
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Stream handles GET /api/v1/notifications/stream. The counters are
// pushed as "counts" events on every poll until the client disconnects.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	userID := auth.FromContext(ctx).UserID()
	if err := sendSSEEvent(w, flusher, "connected", map[string]string{"userId": userID}); err != nil {
		return
	}

	updates := make(chan *model.NotificationCounts)
	poller := notify.NewPoller(h.fetcher, h.interval, h.publisher, h.logger)
	go poller.Run(ctx, func(c *model.NotificationCounts) {
		select {
		case updates <- c:
		case <-ctx.Done():
		}
	})

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("notification stream closed", zap.String("user_id", userID))
			return

		case counts := <-updates:
			if err := sendSSEEvent(w, flusher, "counts", counts); err != nil {
				h.logger.Warn("failed to write notification event", zap.Error(err))
				return
			}

		case <-heartbeat.C:
			if err := sendSSEEvent(w, flusher, "heartbeat", &model.HeartbeatEvent{
				Timestamp: time.Now(),
			}); err != nil {
				return
			}
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	flusher.Flush()

	return nil
}
