// Package fetch retrieves the feed document from the curation backend.
// One GET per session under normal use; explicit reloads pass through a
// rate limiter so key-mashing cannot hammer the backend.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/abelbrown/kiosk/internal/feed"
)

// ErrStatus marks a response with a non-OK HTTP status. Callers can
// errors.Is against it to tell HTTP failures from transport ones.
var ErrStatus = errors.New("unexpected HTTP status")

// ErrThrottled is returned when a reload arrives faster than the limiter
// allows. Not a failure; the previous document is still good.
var ErrThrottled = errors.New("reload throttled")

const userAgent = "kiosk/1.0 (https://github.com/abelbrown/kiosk)"

// maxDocumentBytes caps how large a feed document we will read.
const maxDocumentBytes = 32 << 20

// Loader fetches and decodes the feed document from one URL.
type Loader struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewLoader creates a Loader with the given HTTP client timeout.
// The limiter starts full, so the first Load is never delayed; after that
// reloads are capped at one every few seconds.
func NewLoader(url string, timeout time.Duration) *Loader {
	return &Loader{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
}

// URL returns the feed URL this loader targets.
func (l *Loader) URL() string {
	return l.url
}

// Load fetches and parses the feed document. Respects context
// cancellation. Returns ErrThrottled without touching the network when
// called again before the limiter refills.
func (l *Loader) Load(ctx context.Context) (*feed.Document, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !l.limiter.Allow() {
		return nil, ErrThrottled
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Set a user agent to be a good citizen
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	doc, err := feed.ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed document: %w", err)
	}

	log.WithFields(log.Fields{
		"items":    len(doc.Items),
		"bytes":    len(body),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("feed document loaded")

	return doc, nil
}
