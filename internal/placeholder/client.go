// Package placeholder wraps the public JSONPlaceholder API that the mock server imitates.
//
// Each call issues exactly one GET, checks the decoded body against the shared shape
// validators and returns typed models. Nothing is retried.
package placeholder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/validation"
)

// DefaultBaseURL is the real third-party API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidArgument is returned before any network call when an identifier
// or a required argument is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient builds a client for baseURL; an empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Info("Request to API failed", zap.String("url", target), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	logger.Log.Debug("Request to API processed",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: target}
	}
	return io.ReadAll(resp.Body)
}

func fetchOne[T any](ctx context.Context, c *Client, path, resource string, validate validation.Validator) (T, error) {
	var out T
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return out, err
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return out, fmt.Errorf("decode %s: %w", resource, err)
	}
	if err := validate(raw).Err(resource); err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", resource, err)
	}
	return out, nil
}

func fetchList[T any](ctx context.Context, c *Client, path string, query url.Values, resource string, validate validation.Validator) ([]T, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}
	if result, index := validation.ValidateEach(raw, validate); !result.Valid {
		if index >= 0 {
			resource = fmt.Sprintf("%s[%d]", resource, index)
		}
		return nil, result.Err(resource)
	}

	out := make([]T, 0)
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}
	return out, nil
}

func checkID(name string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be a positive number, got %d", ErrInvalidArgument, name, id)
	}
	return nil
}

func idPath(collection string, id int) string {
	return "/" + collection + "/" + strconv.Itoa(id)
}
