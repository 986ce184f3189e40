package transfer

import (
	"context"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockTransferer is a mock implementation of port.Transferer
type MockTransferer struct {
	mock.Mock
}

// NewMockTransferer creates a new MockTransferer
func NewMockTransferer() *MockTransferer {
	return &MockTransferer{}
}

func (m *MockTransferer) Transfer(ctx context.Context, entry domain.FileEntry, progress port.ProgressFunc) error {
	args := m.Called(ctx, entry, progress)
	return args.Error(0)
}
