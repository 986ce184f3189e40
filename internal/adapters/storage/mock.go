package storage

import (
	"context"
	"doc-intake/internal/core/port"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockStorage) GetObject(ctx context.Context, key string) (io.ReadCloser, *port.ObjectInfo, error) {
	args := m.Called(ctx, key)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Get(1).(*port.ObjectInfo), args.Error(2)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
