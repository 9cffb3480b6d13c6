// transport/http.go

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	logger "github.com/dev-mohitbeniwal/warden/logging"
)

// HTTPTransport is the default Transport over net/http.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

var _ Transport = &HTTPTransport{}

// NewHTTPTransport creates a transport for the identity service at baseURL.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return t.do(req)
}

func (t *HTTPTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req)
}

func (t *HTTPTransport) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &warden_errors.APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	// Error responses carry a {code, message} envelope. Anything else is
	// surfaced as-is.
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
		apiErr.Message = string(body)
	}

	logger.Debug("Identity service request failed",
		zap.String("path", req.URL.Path),
		zap.Int("statusCode", resp.StatusCode),
		zap.String("code", apiErr.Code))
	return nil, apiErr
}

// Close releases the underlying connection pool.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
