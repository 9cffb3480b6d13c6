// transport/transport.go

package transport

import (
	"context"
	"encoding/json"
)

// Transport performs the HTTP round trips of the client. Retries, pooling
// and liveness are its business; callers only see a JSON payload or a
// structured error.
type Transport interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Close() error
}
