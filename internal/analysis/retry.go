package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"
)

const (
	maxAttempts  = 2
	retryBackoff = 500 * time.Millisecond
)

// isTransient reports whether a failed call is worth one more attempt.
// Timeouts, connection errors and 5xx responses qualify; anything the
// service rejected outright does not.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var statusErr statusError
	if errors.As(err, &statusErr) {
		return statusErr.status >= 500
	}
	return false
}

// postWithRetry retries transient failures once. Only calls with no side
// effects on the analysis service go through here; stream starts allocate
// a session over there and must not be replayed blindly.
func (c *Client) postWithRetry(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := c.Post(ctx, path, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return nil, lastErr
}
