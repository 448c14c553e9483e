package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/config"
)

// Client is a thin typed accessor over the CRM REST API. Every read used by
// the intake pipeline and both deal writebacks go through it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a CRM API client from config
func NewClient(cfg *config.CRMConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// get performs a GET request and decodes the JSON response into out.
// A 404 returns errNotFound so callers can distinguish a missing entity from a
// failed call.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Api-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("CRM GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("CRM GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode CRM response for %s: %w", path, err)
	}
	return nil
}

// put performs a PUT request with a JSON body
func (c *Client) put(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal CRM request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Api-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("CRM PUT %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("CRM PUT %s returned %d: %s", path, resp.StatusCode, string(respBody))
	}

	c.logger.Debug("CRM update applied", zap.String("path", path))
	return nil
}

var errNotFound = fmt.Errorf("crm: not found")
