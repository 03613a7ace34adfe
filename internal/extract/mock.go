package extract

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const MockExtractorName = "mock"

// MockExtractor is an Extractor for testing.
type MockExtractor struct {
	// Configurable behavior
	Latency    time.Duration
	ShouldFail bool
	FailFor    map[string]bool   // fail only for these footnote texts
	Responses  map[string]string // blob per footnote text; fallback echoes input

	// State
	mu    sync.Mutex
	calls []string
}

// NewMockExtractor creates a new mock extractor with sensible defaults.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		Responses: make(map[string]string),
		FailFor:   make(map[string]bool),
	}
}

func (m *MockExtractor) Name() string {
	return MockExtractorName
}

func (m *MockExtractor) Extract(ctx context.Context, footnoteText string) (string, error) {
	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, footnoteText)
	m.mu.Unlock()

	if m.ShouldFail || m.FailFor[footnoteText] {
		return "", fmt.Errorf("mock extraction failure")
	}
	if blob, ok := m.Responses[footnoteText]; ok {
		return blob, nil
	}
	return footnoteText, nil
}

// Calls returns the footnote texts extracted so far, in call order.
func (m *MockExtractor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
