// Package hospital is a function-per-endpoint client for the upstream
// hospital REST API. Every call is context-aware and carries the
// shared request timeout; responses are JSON unless noted. The client
// holds no state beyond the connection pool; all records belong to
// the upstream service.
package hospital

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
	"github.com/carebridge/hms-gateway/pkg/config"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// Client talks to the hospital API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a hospital API client
func NewClient(cfg *config.HospitalConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON issues a request with an optional JSON body and decodes the
// JSON response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	observability.RecordUpstreamMetric(ctx, path, time.Since(start))
	if err != nil {
		return apperrors.NewUpstreamError("hospital api unreachable", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewUpstreamError("failed to decode hospital api response", err)
	}
	return nil
}

// doText issues a request and returns the raw response body, for the
// endpoints that answer with plain text (presigned URLs, signup ids).
func (c *Client) doText(ctx context.Context, method, path string, query url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), nil)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build request", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	observability.RecordUpstreamMetric(ctx, path, time.Since(start))
	if err != nil {
		return "", apperrors.NewUpstreamError("hospital api unreachable", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamError("failed to read hospital api response", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// checkStatus maps upstream status codes onto the gateway's error
// classification. The body is drained into the message so callers can
// surface the upstream reason verbatim.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := upstreamMessage(resp)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError(msg)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.NewValidationError(msg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperrors.NewUnauthorizedError(msg)
	case resp.StatusCode == http.StatusConflict:
		return apperrors.NewConflictError(msg)
	default:
		return apperrors.NewUpstreamError(msg, fmt.Errorf("hospital api returned status %d", resp.StatusCode))
	}
}

func upstreamMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return fmt.Sprintf("hospital api returned status %d", resp.StatusCode)
	}

	var structured struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &structured) == nil && structured.Message != "" {
		return structured.Message
	}
	return strings.TrimSpace(string(raw))
}
