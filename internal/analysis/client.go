package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hireup-backend/internal/shared/apperr"
	"hireup-backend/internal/shared/metrics"
	"hireup-backend/internal/shared/telemetry"
)

var ErrEmptyResponse = apperr.Internal("analysis_empty_response", "analysis service returned an empty response")

// Client talks to the video analysis service. Calls carry a generous
// timeout since calibration uploads include camera frames.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Post sends a JSON payload and returns the raw JSON response body.
func (c *Client) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	metrics.IncAnalysisCall()
	resp, err := c.HTTP.Do(req)
	metrics.ObserveAnalysisCallMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncAnalysisCallFailed()
		telemetry.Error("analysis.call_failed", map[string]any{"path": path, "error": err.Error()})
		return nil, fmt.Errorf("analysis call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.IncAnalysisCallFailed()
		return nil, fmt.Errorf("analysis call %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncAnalysisCallFailed()
		telemetry.Error("analysis.call_failed", map[string]any{"path": path, "status": resp.StatusCode})
		return nil, statusError{status: resp.StatusCode, path: path}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		metrics.IncAnalysisCallFailed()
		return nil, ErrEmptyResponse
	}
	return json.RawMessage(raw), nil
}

type statusError struct {
	status int
	path   string
}

func (e statusError) Error() string {
	return fmt.Sprintf("analysis call %s: status %d", e.path, e.status)
}
