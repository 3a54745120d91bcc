package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/penwell/penwell/internal/annotation"
)

// Client is an HTTP client for the annotation store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
}

// ClientConfig configures a store client.
type ClientConfig struct {
	// BaseURL is the store API root, e.g. http://127.0.0.1:8080.
	BaseURL string
	// Timeout bounds each HTTP request (default 30s).
	Timeout time.Duration
	// Attempts is the retry budget per call (default 3).
	Attempts uint
}

// NewClient creates a store client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		attempts:   cfg.Attempts,
	}
}

// Create persists a new annotation.
func (c *Client) Create(ctx context.Context, ann annotation.Annotation) (annotation.Annotation, error) {
	var created annotation.Annotation
	err := c.do(ctx, http.MethodPost, "/annotations", ann, &created)
	if err != nil {
		return annotation.Annotation{}, fmt.Errorf("creating annotation: %w", err)
	}
	return created, nil
}

// Delete removes an annotation by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/annotations/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting annotation %s: %w", id, err)
	}
	return nil
}

// List fetches the annotations for a file.
func (c *Client) List(ctx context.Context, fileID string) ([]annotation.Annotation, error) {
	var anns []annotation.Annotation
	path := "/annotations?file_id=" + url.QueryEscape(fileID)
	if err := c.do(ctx, http.MethodGet, path, nil, &anns); err != nil {
		return nil, fmt.Errorf("listing annotations for file %s: %w", fileID, err)
	}
	return anns, nil
}

// do runs one request with retries. Client errors (4xx) do not retry;
// network failures and 5xx responses do.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyBytes = b
	}

	return retry.Do(
		func() error {
			var bodyReader io.Reader
			if bodyBytes != nil {
				bodyReader = bytes.NewReader(bodyBytes)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			if bodyBytes != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			return c.handleResponse(resp, result)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) handleResponse(resp *http.Response, result any) error {
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		if resp.StatusCode < 500 {
			return retry.Unrecoverable(err)
		}
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return retry.Unrecoverable(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
