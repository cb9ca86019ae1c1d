package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/listafacil/backend/internal/domain"
)

const (
	defaultPageSize = 10
	defaultTimeout  = 30 * time.Second
	maxAttempts     = 3
)

// ClientConfig holds the storefront API settings
type ClientConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	PageSize       int
	Timeout        time.Duration
	// RequestsPerSecond throttles outbound calls to the storefront.
	RequestsPerSecond float64
}

// Client queries the storefront products API. It implements
// domain.CatalogClient.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	pageSize       int
	rateLimiter    *rate.Limiter
	logger         zerolog.Logger
}

// NewClient creates a new storefront catalog client
func NewClient(config ClientConfig, logger zerolog.Logger) *Client {
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        config.BaseURL,
		consumerKey:    config.ConsumerKey,
		consumerSecret: config.ConsumerSecret,
		pageSize:       pageSize,
		rateLimiter:    rate.NewLimiter(rate.Limit(rps), 10),
		logger:         logger,
	}
}

// SearchByCode looks products up by exact SKU.
func (c *Client) SearchByCode(ctx context.Context, code string) ([]domain.CatalogCandidate, error) {
	params := url.Values{}
	params.Add("sku", code)
	return c.search(ctx, params)
}

// SearchByText runs a free-text product search.
func (c *Client) SearchByText(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	params := url.Values{}
	params.Add("search", query)
	params.Add("per_page", fmt.Sprintf("%d", c.pageSize))
	return c.search(ctx, params)
}

// search executes a products query with rate limiting and limited retries.
// A 404 means "no products", not a failure.
func (c *Client) search(ctx context.Context, params url.Values) ([]domain.CatalogCandidate, error) {
	params.Add("consumer_key", c.consumerKey)
	params.Add("consumer_secret", c.consumerSecret)
	reqURL := fmt.Sprintf("%s/products?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("catalog request failed")
			lastErr = err
			if sleepOrDone(ctx, exponentialBackoff(attempt)) {
				return nil, ctx.Err()
			}
			continue
		}

		switch {
		case status == http.StatusOK:
			candidates, err := mapProducts(body)
			if err != nil {
				return nil, fmt.Errorf("decode catalog response: %w", err)
			}
			return candidates, nil
		case status == http.StatusNotFound:
			return nil, nil
		case status >= http.StatusInternalServerError:
			c.logger.Warn().Int("status", status).Int("attempt", attempt).Msg("catalog server error")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, status)
			if sleepOrDone(ctx, exponentialBackoff(attempt)) {
				return nil, ctx.Err()
			}
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, status, truncate(body, 200))
		}
	}

	return nil, lastErr
}

// doRequest executes one HTTP GET and returns the response body and status.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ListaFacil/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

// exponentialBackoff returns the delay before the given retry attempt:
// 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

// sleepOrDone waits for the backoff delay, returning true if the context was
// cancelled first.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return true
	case <-timer.C:
		return false
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
