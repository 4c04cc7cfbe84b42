// Package catalog fetches drama details from a TMDB-compatible catalog
// API. Documents are passed through untouched as raw JSON.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/breaker"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const maxDocumentSize = 4 << 20

type Options struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// HTTPClient calls GET {base}/tv/{id}?api_key={key}. Outbound calls share
// one rate limiter and one circuit breaker.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker.Breaker[json.RawMessage]
	logger  logging.Logger
}

func NewHTTPClient(opts Options, l logging.Logger) *HTTPClient {
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	l = l.With("collaborator", "catalog")
	return &HTTPClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker.New[json.RawMessage]("catalog", breaker.DefaultSettings(), l),
		logger:  l,
	}
}

func (c *HTTPClient) GetItem(ctx context.Context, itemID int64) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: catalog rate limit: %v", common.ErrorCollaboratorUnavailable, err)
	}
	return c.breaker.Execute(ctx, func() (json.RawMessage, error) {
		return c.fetch(ctx, itemID)
	})
}

func (c *HTTPClient) fetch(ctx context.Context, itemID int64) (json.RawMessage, error) {
	u := c.baseURL + "/tv/" + strconv.FormatInt(itemID, 10) + "?" + url.Values{"api_key": {c.apiKey}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog request: %v", common.ErrorCollaboratorUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", common.ErrorCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: catalog read: %v", common.ErrorCollaboratorUnavailable, err)
	}

	c.logger.Debug(ctx, "catalog lookup", "item_id", itemID, "status", resp.StatusCode, "duration", time.Since(start))

	if isBadRequest(resp.StatusCode) {
		// unknown or stale ids end up here; they fail the lookup, not the upstream
		return nil, fmt.Errorf("%w: catalog item %d: status %d: %w", common.ErrorCollaboratorUnavailable, itemID, resp.StatusCode, breaker.ErrBadRequest)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog item %d: status %d", common.ErrorCollaboratorUnavailable, itemID, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: catalog item %d: invalid json", common.ErrorCollaboratorUnavailable, itemID)
	}

	return json.RawMessage(body), nil
}

func isBadRequest(status int) bool {
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}
