package stt

import (
	"context"
	"sync"
	"time"
)

// Mock implements Recognizer for testing.
// All methods can be customized via function fields.
type Mock struct {
	// ListenFunc is called when Listen is invoked.
	// If nil, returns a fixed transcript.
	ListenFunc func(ctx context.Context, opts ListenOptions) (*Result, error)

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
	Opts   ListenOptions
	Time   time.Time
}

// NewMock creates a mock recognizer that hears a fixed phrase.
func NewMock() *Mock {
	return NewMockWithResult("this is a mock transcript", 2*time.Second)
}

// NewMockWithResult creates a mock that always hears the given text.
func NewMockWithResult(text string, dur time.Duration) *Mock {
	return &Mock{
		ListenFunc: func(ctx context.Context, opts ListenOptions) (*Result, error) {
			return &Result{Text: text, Duration: dur, Confidence: 0.95}, nil
		},
	}
}

// NewMockWithError creates a mock whose Listen always fails.
func NewMockWithError(err error) *Mock {
	return &Mock{
		ListenFunc: func(ctx context.Context, opts ListenOptions) (*Result, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// MockStep is one scripted Listen outcome.
type MockStep struct {
	Result *Result
	Err    error
}

// Hear is a convenience MockStep for a successful capture.
func Hear(text string, dur time.Duration) MockStep {
	return MockStep{Result: &Result{Text: text, Duration: dur, Confidence: 0.9}}
}

// Fail is a convenience MockStep for a failed capture.
func Fail(err error) MockStep {
	return MockStep{Err: err}
}

// NewMockScript creates a mock that plays back the given outcomes in order.
// After the script is exhausted the final step repeats.
func NewMockScript(steps ...MockStep) *Mock {
	var (
		mu sync.Mutex
		i  int
	)
	return &Mock{
		ListenFunc: func(ctx context.Context, opts ListenOptions) (*Result, error) {
			mu.Lock()
			step := steps[i]
			if i < len(steps)-1 {
				i++
			}
			mu.Unlock()
			return step.Result, step.Err
		},
	}
}

// Listen calls ListenFunc and records the call.
func (m *Mock) Listen(ctx context.Context, opts ListenOptions) (*Result, error) {
	m.recordCall("Listen", opts)
	if m.ListenFunc != nil {
		return m.ListenFunc(ctx, opts)
	}
	return &Result{Text: "this is a mock transcript", Duration: 2 * time.Second}, nil
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.recordCall("Health", ListenOptions{})
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.recordCall("Close", ListenOptions{})
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// recordCall adds a call to the tracking list.
func (m *Mock) recordCall(method string, opts ListenOptions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Opts: opts, Time: time.Now()})
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

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Recognizer at compile time.
var _ Recognizer = (*Mock)(nil)
