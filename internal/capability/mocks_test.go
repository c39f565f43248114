package capability

import (
	"context"
	"sync"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
)

// mockClient is a deterministic generation client. Responses are canned per
// capability name; every call is counted.
type mockClient struct {
	mu        sync.Mutex
	calls     int
	responses map[string]*generation.Result
	generate  func(ctx context.Context, req generation.Request) (*generation.Result, error)
}

func newMockClient() *mockClient {
	return &mockClient{responses: make(map[string]*generation.Result)}
}

func (m *mockClient) respond(capability string, value map[string]any) *mockClient {
	m.responses[capability] = &generation.Result{Value: value}
	return m
}

func (m *mockClient) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.generate != nil {
		return m.generate(ctx, req)
	}
	if res, ok := m.responses[req.Capability]; ok {
		return res, nil
	}
	return &generation.Result{Value: map[string]any{}}, nil
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
