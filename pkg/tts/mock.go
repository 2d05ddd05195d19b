package tts

import (
	"context"
	"sync"
	"time"
)

// Mock implements Synthesizer for testing.
// All methods can be customized via function fields.
type Mock struct {
	// SpeakFunc is called when Speak is invoked.
	// If nil, Speak succeeds silently.
	SpeakFunc func(ctx context.Context, text string) error

	// HealthFunc is called when Health is invoked.
	// If nil, returns nil (healthy).
	HealthFunc func(ctx context.Context) error

	// CloseFunc is called when Close is invoked.
	// If nil, returns nil.
	CloseFunc func() error

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Text   string
	Time   time.Time
}

// NewMock creates a mock engine whose Speak always succeeds.
func NewMock() *Mock {
	return &Mock{}
}

// NewMockWithError creates a mock whose operations all fail with err.
func NewMockWithError(err error) *Mock {
	return &Mock{
		SpeakFunc: func(ctx context.Context, text string) error {
			return err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Speak calls SpeakFunc and records the call.
func (m *Mock) Speak(ctx context.Context, text string) error {
	m.recordCall("Speak", text)
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return nil
}

// Stop records the call.
func (m *Mock) Stop() {
	m.recordCall("Stop", "")
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.recordCall("Health", "")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.recordCall("Close", "")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// recordCall adds a call to the tracking list.
func (m *Mock) recordCall(method, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{
		Method: method,
		Text:   text,
		Time:   time.Now(),
	})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// LastCall returns the most recent call, or nil if none.
func (m *Mock) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// SpokenText returns the text of every Speak call, in order.
func (m *Mock) SpokenText() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var texts []string
	for _, c := range m.calls {
		if c.Method == "Speak" {
			texts = append(texts, c.Text)
		}
	}
	return texts
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Synthesizer at compile time.
var _ Synthesizer = (*Mock)(nil)
