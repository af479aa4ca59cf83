// Package rest implements the service.Service interface against the task
// REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

var _ service.Service = (*Client)(nil)

// Client implements service.Service over HTTP.
type Client struct {
	base string
	http *http.Client
	log  *log.Logger
}

// New creates a client for cfg.APIURL. Every request carries the token
// currently held by tokens, when there is one.
func New(cfg *config.Config, tokens TokenSource, logger *log.Logger) *Client {
	httpClient := &http.Client{
		Transport: NewTransport(tokens, http.DefaultTransport, logger),
		Timeout:   cfg.Timeout,
	}
	return NewWithHTTPClient(cfg.APIURL, httpClient, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	return &Client{
		base: baseURL,
		http: httpClient,
		log:  logger,
	}
}

// Login posts credentials and returns the bearer token.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (string, error) {
	body, err := c.send(ctx, http.MethodPost, "/auth/login", nil, creds)
	if err != nil {
		return "", err
	}
	return parseToken(body)
}

// Register creates an account. The response body is ignored.
func (c *Client) Register(ctx context.Context, reg service.Registration) error {
	_, err := c.send(ctx, http.MethodPost, "/auth/register", nil, reg)
	return err
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, task, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// ListTasks fetches one page of a user's tasks.
func (c *Client) ListTasks(ctx context.Context, userID int64, page, size int) (service.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var p service.Page
	path := "/tasks/user/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &p); err != nil {
		return service.Page{}, err
	}
	return p, nil
}

// UpdateTaskStatus patches a task's status.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	payload := struct {
		Status service.Status `json:"status"`
	}{status}

	var updated service.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, payload, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, taskPath(id), nil, nil)
	return err
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	body, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

// send performs one request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, wrapError(err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err)
	}
	return data, nil
}

// parseToken accepts a bare token, a JSON string, or an object carrying
// token or accessToken.
func parseToken(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty login response")
	}

	var token string
	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return "", fmt.Errorf("invalid login response: %w", err)
		}
	case '{':
		var obj struct {
			Token       string `json:"token"`
			AccessToken string `json:"accessToken"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return "", fmt.Errorf("invalid login response: %w", err)
		}
		token = obj.Token
		if token == "" {
			token = obj.AccessToken
		}
	default:
		token = string(trimmed)
	}

	if token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return token, nil
}
