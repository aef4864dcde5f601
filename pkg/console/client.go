package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps the Guard-X security REST API consumed by the operator
// console. The API carries no authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a security API client. A zero timeout defaults to
// 10 seconds; every request carries the timeout so a hung backend can
// never occupy a polling slot indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// statusEnvelope is the wire envelope around the status document.
type statusEnvelope struct {
	AntiJammingStatus StatusDocument `json:"anti_jamming_status"`
	Timestamp         time.Time      `json:"timestamp"`
}

// ActionAck acknowledges a monitoring control action.
type ActionAck struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// TestAck reports the backend's response to a detection test.
type TestAck struct {
	Message   string          `json:"message"`
	Status    string          `json:"status"`
	TestEvent json.RawMessage `json:"test_event,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// JammingStatus fetches the current status document.
func (c *Client) JammingStatus(ctx context.Context) (StatusDocument, error) {
	var resp statusEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/security/jamming-status", nil, &resp); err != nil {
		return StatusDocument{}, fmt.Errorf("jamming status: %w", err)
	}
	return resp.AntiJammingStatus, nil
}

// StartMonitoring asks the backend to activate its sampling loops.
func (c *Client) StartMonitoring(ctx context.Context) (*ActionAck, error) {
	var ack ActionAck
	if err := c.doJSON(ctx, http.MethodPost, "/api/security/start-monitoring", nil, &ack); err != nil {
		return nil, fmt.Errorf("start monitoring: %w", err)
	}
	return &ack, nil
}

// StopMonitoring asks the backend to deactivate its sampling loops.
func (c *Client) StopMonitoring(ctx context.Context) (*ActionAck, error) {
	var ack ActionAck
	if err := c.doJSON(ctx, http.MethodPost, "/api/security/stop-monitoring", nil, &ack); err != nil {
		return nil, fmt.Errorf("stop monitoring: %w", err)
	}
	return &ack, nil
}

// TestJamming fires a synthetic detection test on the backend.
func (c *Client) TestJamming(ctx context.Context) (*TestAck, error) {
	var ack TestAck
	if err := c.doJSON(ctx, http.MethodPost, "/api/security/test-jamming", nil, &ack); err != nil {
		return nil, fmt.Errorf("test jamming: %w", err)
	}
	return &ack, nil
}

// doJSON performs an HTTP request with JSON serialization/deserialization.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("security API %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
