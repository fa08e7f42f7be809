package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/leboncoincoin/marketplace-web/internal/model"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

// ErrUnsupportedContentType is returned for non-image uploads.
var ErrUnsupportedContentType = errors.New("content type must be image/jpeg, image/jpg, image/png, image/gif or image/webp")

// ErrStorage is returned when object storage fails or refuses a presigned
// upload. Its status is never relayed to the browser.
var ErrStorage = errors.New("object storage upload failed")

var imageContentType = regexp.MustCompile(`^image/(jpeg|jpg|png|gif|webp)$`)

// IsImageContentType reports whether ct may be uploaded.
func IsImageContentType(ct string) bool {
	return imageContentType.MatchString(ct)
}

// Uploads groups the image upload endpoints.
type Uploads struct{ c *Client }

// PresignedURL asks the backend for a one-shot upload URL.
func (u *Uploads) PresignedURL(ctx context.Context, filename, contentType string) (*model.PresignedURL, error) {
	if !IsImageContentType(contentType) {
		return nil, ErrUnsupportedContentType
	}
	var out model.PresignedURL
	if err := u.c.do(ctx, call{
		method: http.MethodPost,
		route:  "/uploads/presigned-url",
		path:   "/uploads/presigned-url",
		body:   &model.PresignedURLRequest{Filename: filename, ContentType: contentType},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Put stores the file at a presigned URL. The backend token is not sent
// to object storage.
func (u *Uploads) Put(ctx context.Context, uploadURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if size > 0 {
		req.ContentLength = size
	}

	start := time.Now()
	resp, err := u.c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendCall(http.MethodPut, "object-storage", "error", time.Since(start).Seconds())
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer resp.Body.Close()
	metrics.RecordBackendCall(http.MethodPut, "object-storage", statusLabel(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrStorage, resp.StatusCode, errorMessage(raw))
	}
	return nil
}
