package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"offerly/internal/shared/config"
	"offerly/pkg/cache"
	"offerly/pkg/logger"
)

// Client reads the external venue calendar over HTTP. Month responses are
// cached briefly; the feed is reference data, never price-critical.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	cache     cache.Service
	cacheTTL  time.Duration
	log       *logger.Logger
}

func NewClient(cfg config.CalendarConfig, cacheSvc cache.Service, cacheTTL time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: cfg.Timeout},
		cache:     cacheSvc,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

type eventsResponse struct {
	Events []Event `json:"events"`
}

// EventsForMonth fetches the feed's events for a venue label and month.
// Errors bubble up so the caller can degrade to "no advisory data".
func (c *Client) EventsForMonth(ctx context.Context, venueLabel string, month time.Month, year int) ([]Event, error) {
	key := fmt.Sprintf("offerly:calendar:%s:%d-%02d", venueLabel, year, int(month))

	var events []Event
	err := c.cache.GetOrSet(ctx, key, c.cacheTTL, func() (interface{}, error) {
		return c.fetchMonth(ctx, venueLabel, month, year)
	}, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) fetchMonth(ctx context.Context, venueLabel string, month time.Month, year int) ([]Event, error) {
	endpoint, err := url.Parse(c.baseURL + "/events")
	if err != nil {
		return nil, fmt.Errorf("invalid calendar base URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("venue", venueLabel)
	q.Set("month", fmt.Sprintf("%d", int(month)))
	q.Set("year", fmt.Sprintf("%d", year))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar feed unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	var payload eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return payload.Events, nil
}
