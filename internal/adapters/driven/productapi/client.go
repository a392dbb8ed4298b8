package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ProductCatalog = (*Client)(nil)

// Header names sent with every search request.
const (
	HeaderAPIKey    = "X-Newaim-Api-Key"
	HeaderRequestID = "X-Request-Id"
)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "prodsearch/dev"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 8 << 20
)

// Config holds configuration for the product search client.
type Config struct {
	// BaseURL is the API root, e.g. https://api.example.com.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	// RateLimiter, if set, is told about server-side throttling.
	RateLimiter *RateLimiter
}

// Client performs product searches over HTTP.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *RateLimiter
	newID     func() string
}

// searchResponse is the search endpoint body.
// Data is either the item array or a nested {data, total} envelope.
type searchResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int64           `json:"total"`
}

// NewClient creates a new product search client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", domain.ErrInvalidInput)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		client:    httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   cfg.RateLimiter,
		newID:     uuid.NewString,
	}, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search issues one GET request for the query.
func (c *Client) Search(
	ctx context.Context,
	apiKey domain.ClientIdentifier,
	query domain.SearchQuery,
) (domain.SearchResult, error) {
	endpoint := c.endpoint(query)
	requestID := c.newID()
	logger.Debug("GET %s (request %s)", endpoint, requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return domain.SearchResult{}, &domain.TransportError{Message: "create request", Err: err}
	}
	req.Header.Set(HeaderAPIKey, apiKey.String())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.SearchResult{}, networkError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.SearchResult{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Message:    "read response",
			Err:        err,
		}
	}
	logger.Debug("Status %d, %d bytes", resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &domain.TransportError{
			StatusCode: resp.StatusCode,
			Message:    responseMessage(body),
			Payload:    body,
		}
		if terr.IsRateLimited() && c.limiter != nil {
			c.limiter.RecordRateLimitError(retryAfter(resp.Header))
		}
		return domain.SearchResult{}, terr
	}

	result, err := decodeResult(body)
	if err != nil {
		return domain.SearchResult{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Message:    "decode response",
			Payload:    body,
			Err:        err,
		}
	}
	return result, nil
}

// endpoint builds the request URL. Parameters keep the order keyword, from, size.
func (c *Client) endpoint(query domain.SearchQuery) string {
	return c.baseURL + "/product?keyword=" + url.QueryEscape(query.Keyword) +
		"&from=" + strconv.Itoa(query.From) +
		"&size=" + strconv.Itoa(query.Size)
}

func networkError(ctx context.Context, err error) *domain.TransportError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &domain.TransportError{Message: ctxErr.Error(), Err: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &domain.TransportError{Message: "request timed out", Err: err}
	}
	return &domain.TransportError{Message: err.Error(), Err: err}
}

// responseMessage extracts the server text from an error body.
// The endpoint answers with plain text, or with a JSON string or
// {"message": ...} object.
func responseMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(trimmed, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return string(trimmed)
}

func decodeResult(body []byte) (domain.SearchResult, error) {
	var outer searchResponse
	if err := json.Unmarshal(body, &outer); err != nil {
		return domain.SearchResult{}, err
	}

	data := bytes.TrimSpace(outer.Data)
	if len(data) > 0 && data[0] == '{' {
		var inner searchResponse
		if err := json.Unmarshal(data, &inner); err != nil {
			return domain.SearchResult{}, fmt.Errorf("envelope: %w", err)
		}
		outer = inner
		data = bytes.TrimSpace(inner.Data)
	}

	items := []domain.Product{}
	if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, &items); err != nil {
			return domain.SearchResult{}, fmt.Errorf("items: %w", err)
		}
	}

	return domain.SearchResult{Items: items, Total: outer.Total}, nil
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
