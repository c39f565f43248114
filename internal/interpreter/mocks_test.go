package interpreter

import (
	"context"
	"sync"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
)

// mockClient returns a fixed classification and counts calls.
type mockClient struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context, req generation.Request) (*generation.Result, error)
}

func classifyAs(action, parameter string) *mockClient {
	return &mockClient{
		generate: func(ctx context.Context, req generation.Request) (*generation.Result, error) {
			return &generation.Result{Value: map[string]any{
				"action":    action,
				"parameter": parameter,
			}}, nil
		},
	}
}

func (m *mockClient) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.generate(ctx, req)
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
