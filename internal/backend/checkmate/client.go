// Package checkmate implements the service.Service interface over the
// checkmate HTTP API.
package checkmate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkmate/internal/config"
	"checkmate/internal/service"
)

const (
	// APITimeout bounds every API call, connect through body read.
	APITimeout = 10 * time.Second

	// Field limits enforced by the service.
	MaxTitleLen = 200
	MaxNotesLen = 1000

	// GrandmasterHeader carries the grandmaster-name credential.
	GrandmasterHeader = "Grandmaster"

	// MoveParam is the query parameter carrying the move-notation credential.
	MoveParam = "move"

	// TimeLayout is the format of createTime and completeTime.
	TimeLayout = "January 02, 2006 15:04:05"

	readPath    = "read-notation.php"
	updatePath  = "update-notation.php"
	cleanupPath = "cleanup-notation.php"

	newTaskGUID         = "new"
	deletedSortPosition = -1
	maxErrorBody        = 200
)

// DefaultUserAgent identifies the client on every request.
var DefaultUserAgent = "checkmate-cli/1.0"

// Client implements service.Service using the checkmate HTTP API.
type Client struct {
	baseURL     *url.URL
	move        string
	grandmaster string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithClock sets the time source for createTime and completeTime.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the service described by s.
// The base URL must be absolute.
func New(s config.Settings, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(s.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid service URL %q: %w", s.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service URL %q: must be absolute", s.URL)
	}

	c := &Client{
		baseURL:     u,
		move:        s.Move,
		grandmaster: s.Grandmaster,
		userAgent:   DefaultUserAgent,
		httpClient:  &http.Client{Timeout: APITimeout},
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint returns the URL for path with the move credential appended.
func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	u.RawPath = ""
	q := u.Query()
	q.Set(MoveParam, c.move)
	u.RawQuery = q.Encode()
	return &u
}

// do sends one request and returns the body of a 2xx response.
// It never retries.
func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(GrandmasterHeader, c.grandmaster)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = unwrapURLError(err)
		c.logger.Debug("request failed", "op", op, "method", method, "path", u.Path, "error", err)
		return nil, &service.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.TransportError{Op: op, Err: err}
	}

	c.logger.Debug("request",
		"op", op,
		"method", method,
		"path", u.Path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &service.ServiceError{Op: op, Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// full request URL including the move credential.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// ListTasks returns the full task collection in service order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	const op = "list tasks"
	data, err := c.do(ctx, op, http.MethodGet, readPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeTasks(op, data)
}

// CreateTask creates a new, uncompleted task.
// Title and notes are truncated to the service limits.
func (c *Client) CreateTask(ctx context.Context, title, notes string) (service.Task, error) {
	const op = "create task"
	req := createRequest{
		GUID:         newTaskGUID,
		Title:        truncate(title, MaxTitleLen),
		Notes:        truncate(notes, MaxNotesLen),
		CreateTime:   c.now().Format(TimeLayout),
		CompleteTime: "",
	}

	data, err := c.do(ctx, op, http.MethodPost, updatePath, req)
	if err != nil {
		return service.Task{}, err
	}
	tasks, err := decodeTasks(op, data)
	if err != nil {
		return service.Task{}, err
	}

	// The service appends new tasks; the last title match is ours.
	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Title == req.Title {
			return tasks[i], nil
		}
	}
	return service.Task{}, &service.ProtocolError{Op: op, Err: fmt.Errorf("created task %q not in response", req.Title)}
}

// UpdateTask sends only the non-nil fields of upd.
func (c *Client) UpdateTask(ctx context.Context, id string, upd service.TaskUpdate) (service.Task, error) {
	const op = "update task"
	if upd.IsEmpty() {
		return service.Task{}, fmt.Errorf("%s: nothing to update", op)
	}

	req := updateRequest{GUID: id}
	if upd.Title != nil {
		title := truncate(*upd.Title, MaxTitleLen)
		req.Title = &title
	}
	if upd.Notes != nil {
		notes := truncate(*upd.Notes, MaxNotesLen)
		req.Notes = &notes
	}
	if upd.Completed != nil {
		req.Completed = upd.Completed
		req.CompleteTime = c.completeTime(*upd.Completed)
	}
	return c.update(ctx, op, id, req)
}

// SetCompleted sets the completion flag and the matching completeTime.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	const op = "set completed"
	req := updateRequest{
		GUID:         id,
		Completed:    &completed,
		CompleteTime: c.completeTime(completed),
	}
	return c.update(ctx, op, id, req)
}

func (c *Client) completeTime(completed bool) *string {
	s := ""
	if completed {
		s = c.now().Format(TimeLayout)
	}
	return &s
}

func (c *Client) update(ctx context.Context, op, id string, req updateRequest) (service.Task, error) {
	data, err := c.do(ctx, op, http.MethodPost, updatePath, req)
	if err != nil {
		return service.Task{}, err
	}
	tasks, err := decodeTasks(op, data)
	if err != nil {
		return service.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, &service.ProtocolError{Op: op, Err: fmt.Errorf("task %s not in response", id)}
}

// DeleteTask removes the task. The service deletes tasks whose sort
// position is set to -1.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	const op = "delete task"
	pos := deletedSortPosition
	data, err := c.do(ctx, op, http.MethodPost, updatePath, updateRequest{GUID: id, SortPosition: &pos})
	if err != nil {
		return err
	}
	_, err = decodeTasks(op, data)
	return err
}

// Cleanup removes all completed tasks and returns what remains.
func (c *Client) Cleanup(ctx context.Context) ([]service.Task, error) {
	const op = "cleanup"
	data, err := c.do(ctx, op, http.MethodGet, cleanupPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeTasks(op, data)
}
