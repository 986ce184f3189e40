package document

import (
	"context"
	"doc-intake/internal/core/domain"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

// NewMockDocumentService creates a new MockDocumentService
func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{}
}

func (m *MockDocumentService) StoreDocument(ctx context.Context, name string, size int64, body io.Reader) (*domain.Document, error) {
	args := m.Called(ctx, name, size, body)
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetDocument(ctx context.Context, name string) (*domain.Document, io.ReadCloser, error) {
	args := m.Called(ctx, name)
	body, _ := args.Get(1).(io.ReadCloser)
	return args.Get(0).(*domain.Document), body, args.Error(2)
}
