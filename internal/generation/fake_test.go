package generation

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonathan/sheet-copywriter/internal/llm"
)

// fakeClient routes every Chat call through fn and counts calls per product.
type fakeClient struct {
	fn       func(ctx context.Context, req llm.ChatRequest) (string, error)
	mu       sync.Mutex
	calls    map[string]int
	requests []llm.ChatRequest
	inFlight atomic.Int32
	peak     atomic.Int32
	closed   atomic.Bool
}

func newFakeClient(fn func(ctx context.Context, req llm.ChatRequest) (string, error)) *fakeClient {
	return &fakeClient{fn: fn, calls: map[string]int{}}
}

func (f *fakeClient) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[productName(req)]++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	return f.fn(ctx, req)
}

func (f *fakeClient) Model() string { return "fake" }

func (f *fakeClient) Close() error {
	f.closed.Store(true)
	return nil
}

func (f *fakeClient) callsFor(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// productName pulls "- Name: X" out of the rendered user message.
func productName(req llm.ChatRequest) string {
	for _, m := range req.Messages {
		if m.Role != llm.RoleUser {
			continue
		}
		const marker = "- Name: "
		start := strings.Index(m.Content, marker)
		if start < 0 {
			return ""
		}
		rest := m.Content[start+len(marker):]
		if end := strings.IndexByte(rest, '\n'); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	return ""
}
