// Package restapi implements the service.Service interface against the task REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/googleapi"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

// API paths, relative to the configured base URL.
const (
	ListPath   = "/api/v1/get"
	AddPath    = "/api/v1/add"
	UpdatePath = "/api/v1/update/"
	DeletePath = "/api/v1/delete/"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     logr.Logger
}

// New creates a client for cfg.BaseURL.
// The base URL is not validated; a missing or bad URL surfaces as a
// transport error on the first call.
func New(cfg *config.Config, log logr.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.WithName("restapi"),
	}
}

// listResponse is the body of GET /api/v1/get.
type listResponse struct {
	Data json.RawMessage `json:"data"`
}

// ListTasks fetches the whole collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, "list", http.MethodGet, ListPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.Error{Op: "list", Kind: service.KindTransport, Err: err}
	}
	return decodeList(body)
}

func decodeList(body []byte) ([]service.Task, error) {
	malformed := func(err error) error {
		return &service.Error{Op: "list", Kind: service.KindMalformed, Err: err}
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, malformed(err)
	}
	data := bytes.TrimSpace(lr.Data)
	if len(data) == 0 || string(data) == "null" {
		return nil, malformed(errors.New("missing data field"))
	}
	if data[0] != '[' {
		return nil, malformed(errors.New("data is not an array"))
	}

	tasks := []service.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, malformed(err)
	}
	return tasks, nil
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.send(ctx, "create", http.MethodPost, AddPath, in)
}

// UpdateTask replaces a task's fields.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.send(ctx, "update", http.MethodPut, UpdatePath+url.PathEscape(id), in)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.send(ctx, "delete", http.MethodDelete, DeletePath+url.PathEscape(id), nil)
}

// send performs a request whose response body is ignored.
func (c *Client) send(ctx context.Context, op, method, path string, body any) error {
	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// do issues a request and returns the response if its status is 2xx.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &service.Error{Op: op, Kind: service.KindTransport, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.V(1).Info("request", "method", method, "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.V(1).Info("request failed", "method", method, "url", target, "error", err.Error())
		return nil, &service.Error{Op: op, Kind: service.KindTransport, Err: wrapError(err)}
	}
	c.log.V(1).Info("response", "method", method, "url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		resp.Body.Close()
		status := resp.StatusCode
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		return nil, &service.Error{Op: op, Kind: service.KindStatus, Status: status, Err: err}
	}
	return resp, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// wrapError replaces deadline errors with a readable message.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
