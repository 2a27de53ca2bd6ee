// Package client talks to the task store service over HTTP.
//
// Errors fall into two classes. ErrNotFound means the service answered and the task id
// does not exist. ErrTransport covers everything else: the service could not be
// reached, answered with an unexpected status, or sent a body that does not decode.
// Nothing is retried.
package client

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

	"github.com/astromechza/task-tracker/pkg/task"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrTransport = errors.New("transport failure")
)

type Client struct {
	baseUrl *url.URL
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// New parses baseAddr, which may be a full URL or a bare host:port.
func New(baseAddr string, opts ...Option) (*Client, error) {
	if !strings.Contains(baseAddr, "://") {
		baseAddr = "http://" + baseAddr
	}
	baseUrl, err := url.Parse(baseAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base address: %w", err)
	}
	if baseUrl.Host == "" {
		return nil, fmt.Errorf("base address %q has no host", baseAddr)
	}
	c := &Client{baseUrl: baseUrl, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseUrl.String()
}

func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	if err := c.do(ctx, http.MethodGet, c.baseUrl.JoinPath("tasks"), nil, &out, false); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if out == nil {
		out = make([]task.Task, 0)
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, t task.Task) (task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPost, c.baseUrl.JoinPath("tasks"), &t, &out, false); err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int, t task.Task) (task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPut, c.taskUrl(id), &t, &out, true); err != nil {
		return task.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return out, nil
}

// Delete returns the service's acknowledgment message.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, c.taskUrl(id), nil, &out, true); err != nil {
		return "", fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return out.Message, nil
}

func (c *Client) taskUrl(id int) *url.URL {
	return c.baseUrl.JoinPath("tasks", strconv.Itoa(id))
}

// do sends in as JSON and decodes a 200 response into out. A 404 is ErrNotFound only
// when notFoundOK is set and the body carries the service's detail message; any other
// 404 means the address does not point at the task service.
func (c *Client) do(ctx context.Context, method string, u *url.URL, in any, out any, notFoundOK bool) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err)
		}
		return nil
	case http.StatusNotFound:
		if msg, ok := detail(resp.Body); ok && notFoundOK {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return fmt.Errorf("%w: unexpected status code: %d %s", ErrTransport, resp.StatusCode, http.StatusText(resp.StatusCode))
	default:
		return fmt.Errorf("%w: unexpected status code: %d", ErrTransport, resp.StatusCode)
	}
}

func detail(r io.Reader) (string, bool) {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil || out.Detail == "" {
		return "", false
	}
	return out.Detail, true
}
