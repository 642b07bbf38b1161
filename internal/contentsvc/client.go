// Package contentsvc is the client for the authoritative content service
// the pipeline probes artifacts against. Only three operations are
// assumed: update by identifier, create, and delete.
package contentsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/config"
)

// ErrNotFound reports that an update targeted an identifier the service
// does not know. The probe treats it as the signal to create instead.
type ErrNotFound struct {
	Identifier string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("content service: %q not found", e.Identifier)
}

// IsNotFound reports whether err is the service's not-found error.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// Service is the minimal write surface the probe needs.
type Service interface {
	// Update replaces the content stored under identifier.
	// Returns ErrNotFound if the identifier does not exist.
	Update(ctx context.Context, identifier, content string) error

	// Create registers new content under identifier.
	Create(ctx context.Context, identifier, content string) error

	// Delete removes the content stored under identifier.
	Delete(ctx context.Context, identifier string) error
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a content service client from service config.
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

func (c *Client) Update(ctx context.Context, identifier, content string) error {
	return c.send(ctx, http.MethodPut, "/items/"+url.PathEscape(identifier), identifier, content)
}

func (c *Client) Create(ctx context.Context, identifier, content string) error {
	return c.send(ctx, http.MethodPost, "/items", identifier, content)
}

func (c *Client) Delete(ctx context.Context, identifier string) error {
	return c.send(ctx, http.MethodDelete, "/items/"+url.PathEscape(identifier), identifier, "")
}

func (c *Client) send(ctx context.Context, method, path, identifier, content string) error {
	var body io.Reader
	if content != "" {
		body = strings.NewReader(content)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if content != "" {
		req.Header.Set("Content-Type", "application/xml")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("content service request",
		zap.String("method", method),
		zap.String("identifier", identifier))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content service %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &ErrNotFound{Identifier: identifier}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content service %s %s: status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
