package notify

import (
	"context"
	"doc-intake/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockCompletionSink is a mock implementation of port.CompletionSink
type MockCompletionSink struct {
	mock.Mock
}

// NewMockCompletionSink creates a new MockCompletionSink
func NewMockCompletionSink() *MockCompletionSink {
	return &MockCompletionSink{}
}

func (m *MockCompletionSink) Notify(ctx context.Context, event domain.CompletionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
