package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

// Service enumerates course content. Implementations must be read-only.
type Service interface {
	Course(ctx context.Context, courseID string) (*Course, error)
	Exercises(ctx context.Context, courseID string) ([]Exercise, error)
	Questions(ctx context.Context, exerciseID string) ([]Question, error)
	Passages(ctx context.Context, courseID string) ([]Passage, error)
	Assessments(ctx context.Context, courseID string) ([]Assessment, error)
}

// ErrNotFound is returned when the catalog has no record of the requested
// entity. It is a domain error: callers tag it non-retryable.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("catalog: %s %q not found", e.Kind, e.ID)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a catalog client from service config.
func NewClient(cfg config.ServiceConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

func (c *Client) Course(ctx context.Context, courseID string) (*Course, error) {
	var course Course
	path := "/courses/" + url.PathEscape(courseID)
	if err := c.get(ctx, path, "course", courseID, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) Exercises(ctx context.Context, courseID string) ([]Exercise, error) {
	var out []Exercise
	path := "/courses/" + url.PathEscape(courseID) + "/exercises"
	return out, c.get(ctx, path, "course", courseID, &out)
}

func (c *Client) Questions(ctx context.Context, exerciseID string) ([]Question, error) {
	var out []Question
	path := "/exercises/" + url.PathEscape(exerciseID) + "/questions"
	return out, c.get(ctx, path, "exercise", exerciseID, &out)
}

func (c *Client) Passages(ctx context.Context, courseID string) ([]Passage, error) {
	var out []Passage
	path := "/courses/" + url.PathEscape(courseID) + "/passages"
	return out, c.get(ctx, path, "course", courseID, &out)
}

func (c *Client) Assessments(ctx context.Context, courseID string) ([]Assessment, error) {
	var out []Assessment
	path := "/courses/" + url.PathEscape(courseID) + "/assessments"
	return out, c.get(ctx, path, "course", courseID, &out)
}

// get performs one GET and decodes the JSON body into dst. A 404 becomes
// an ErrNotFound tagged non-retryable so the task runner propagates it
// immediately.
func (c *Client) get(ctx context.Context, path, kind, id string, dst any) error {
	u := c.baseURL + path
	c.log.Debug("catalog request", zap.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return retry.NonRetryable(&ErrNotFound{Kind: kind, ID: id})
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog GET %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode catalog response for %s: %w", path, err)
	}
	return nil
}
