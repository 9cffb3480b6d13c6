// test/mock/transport.go
package mock

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// Transport is a mock implementation of transport.Transport
type Transport struct {
	mock.Mock
}

func (m *Transport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	args := m.Called(ctx, path)
	if raw := args.Get(0); raw != nil {
		return raw.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Transport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	args := m.Called(ctx, path, body)
	if raw := args.Get(0); raw != nil {
		return raw.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Transport) Close() error {
	args := m.Called()
	return args.Error(0)
}
