// Package client talks to the PIM REST API. EntityService is the one generic
// CRUD client every entity screen is built on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"

	headerTotalCount = "X-Total-Count"
	headerRequestID  = "X-Request-ID"
)

type ClientLogHook struct{}

func (h *ClientLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Client: " + entry.Message
	return nil
}

func (h *ClientLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

type Config struct {
	// BaseURL is the server root, e.g. http://localhost:8080.
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int
}

type Client struct {
	baseURL string
	http    http.Client
	limiter *rate.Limiter
	log     *logrus.Entry

	mu    sync.RWMutex
	token string
}

func New(cfg Config, log *logrus.Entry) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second * 10
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    http.Client{Timeout: timeout},
		log:     log,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// endpointFor resolves an api path such as "api/baskets" against the base url.
func (c *Client) endpointFor(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, contentType string) (*rawResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewError(ServerAppError, "request throttled", 0, err)
		}
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.log.Errorf("%s %s: failed to marshal request body - %v", method, path, err)
			return nil, NewError(JsonAppError, "failed to marshal request body", 0, err)
		}
		c.log.Debugf("%s %s: body - %s", method, path, jsonBody)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointFor(path), reader)
	if err != nil {
		c.log.Errorf("%s %s: failed to create request - %v", method, path, err)
		return nil, NewError(ServerAppError, "failed to create request", 0, err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debugf("%s %s: request failed - %v", method, path, err)
		return nil, NewError(ServerAppError, fmt.Sprintf("%s %s failed", method, path), 0, err)
	}
	defer resp.Body.Close()

	bts, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debugf("%s %s: failed readAll body - %v", method, path, err)
		return nil, NewError(ServerAppError, "failed read body", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.httpError(method, path, resp.StatusCode, bts)
	}

	return &rawResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   bts,
	}, nil
}

func (c *Client) httpError(method, path string, status int, body []byte) *Error {
	e := NewError(HttpError, fmt.Sprintf("%s %s", method, path), status, nil)

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		e.Detail = apiErr.Error
		e.FieldErrors = apiErr.FieldErrors
	} else if len(body) > 0 {
		e.Detail = strings.TrimSpace(string(body))
	}

	c.log.Debugf("%s %s: unexpected status %d, body - %s", method, path, status, body)
	return e
}

// decodeBody returns nil for an empty or null body.
func decodeBody[T any](bts []byte) (*T, error) {
	trimmed := bytes.TrimSpace(bts)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, NewError(JsonAppError, "failed to decode response body", 0, err)
	}
	return &v, nil
}
