// Package analytics delivers best-effort pageview events to a third-party collector.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/oauth-redirect-relay/internal/errors"
	"github.com/rs/zerolog"
)

// Reporter accepts pageview events. Report must not block and never fails.
type Reporter interface {
	Report(event Event)
	Wait(ctx context.Context) error
}

// Collector posts each event from its own goroutine. At most one attempt is made per event.
type Collector struct {
	endpoint   string
	domain     string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
	inflight   sync.WaitGroup
}

var _ Reporter = (*Collector)(nil)

func NewCollector(endpoint, domain, apiKey string, timeout time.Duration, logger zerolog.Logger) *Collector {
	return &Collector{
		endpoint:   endpoint,
		domain:     domain,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "analytics").Logger(),
	}
}

func (c *Collector) Report(event Event) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		id := uuid.NewString()
		// Not tied to the request context: the response is already sent.
		if err := c.send(context.Background(), event); err != nil {
			c.logger.Warn().Err(err).Str("event_id", id).Str("path", event.Path).Msg("Failed to deliver pageview")
			return
		}
		c.logger.Debug().Str("event_id", id).Str("path", event.Path).Msg("Pageview delivered")
	}()
}

// Wait blocks until in-flight events finish or ctx is done. It does not cancel them.
func (c *Collector) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collector) send(ctx context.Context, event Event) error {
	body, err := json.Marshal(collectorPayload{
		Name:   pageviewEventName,
		URL:    c.pageURL(event.Path),
		Domain: c.domain,
	})
	if err != nil {
		return errors.Wrapf(errors.ErrAnalyticsDelivery, "json.Marshal: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(errors.ErrAnalyticsDelivery, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", event.UserAgent)
	if event.IP != "" {
		req.Header.Set("X-Forwarded-For", event.IP)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrAnalyticsDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(errors.ErrAnalyticsDelivery, "collector returned %s", resp.Status)
	}
	return nil
}

func (c *Collector) pageURL(path string) string {
	return "https://" + c.domain + path
}

// Disabled drops every event.
type Disabled struct{}

var _ Reporter = Disabled{}

func (Disabled) Report(Event) {}

func (Disabled) Wait(context.Context) error { return nil }
