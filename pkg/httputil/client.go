package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is applied when the caller does not supply a client.
const DefaultTimeout = 30 * time.Second

// DefaultClient returns an HTTP client with the given timeout, falling back
// to DefaultTimeout when timeout is zero.
func DefaultClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// PostJSON marshals payload as JSON and sends a POST request with the given
// headers. Returns the response body and status code. Non-2xx responses are
// not an error here; callers classify them from the status code.
func PostJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request body: %w", err)
	}
	if client == nil {
		client = DefaultClient(0)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// GetJSON sends a GET request with the given headers and query parameters and
// returns the response body and status code. Non-2xx responses are not an
// error here; callers classify them from the status code.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, query url.Values) ([]byte, int, error) {
	if client == nil {
		client = DefaultClient(0)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, 0, err
	}
	if len(query) > 0 {
		merged := parsed.Query()
		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}
		parsed.RawQuery = merged.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return data, resp.StatusCode, nil
}
