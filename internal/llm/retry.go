package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const maxAttempts = 3

// retryBackoff is the first retry delay; it doubles on each attempt.
var retryBackoff = 500 * time.Millisecond

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// postJSON sends body to url and returns the raw 200 response. Rate limits
// and unavailability are retried with exponential backoff; other non-200
// answers come back as *ProviderError.
func postJSON(ctx context.Context, hc *http.Client, provider, url string, headers map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s api: %w", provider, err)
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}
		perr := &ProviderError{Provider: provider, Status: resp.StatusCode, Body: string(respBody)}
		if !retryable(resp.StatusCode) || attempt+1 >= maxAttempts {
			return nil, perr
		}

		wait := retryBackoff << attempt
		slog.Warn("provider busy, retrying", "provider", provider, "status", resp.StatusCode, "wait", wait)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}
