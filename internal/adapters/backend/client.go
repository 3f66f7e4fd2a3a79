package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brightpath/student-portal-api/internal/domain"
)

// Client wraps the backend REST API the portal fronts.
// Every method issues one call and classifies failures so callers can tell a
// transport failure apart from a business-logic rejection.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

type Config struct {
	BaseURL      string
	ServiceToken string
	HTTPClient   *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		serviceToken: cfg.ServiceToken,
		httpClient:   httpClient,
	}
}

// do issues one request. A transport-level error maps to ErrBackendUnavailable;
// a non-2xx response maps to ErrBackendRejected carrying the backend's
// message|error field verbatim when present.
func (c *Client) do(ctx context.Context, method, path, bearer string, in any) (json.RawMessage, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer == "" {
		bearer = c.serviceToken
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, rejectionMessage(raw, resp.StatusCode))
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrBackendRejected, rejectionMessage(raw, resp.StatusCode))
	}
	return json.RawMessage(raw), nil
}

// rejectionMessage extracts the backend's own wording from an error body.
func rejectionMessage(raw []byte, statusCode int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("backend returned %d", statusCode)
}

// dataSection unwraps `{data: ...}` envelopes, tolerating bare payloads so the
// portal keeps working if the backend drops the wrapper.
func dataSection(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}
