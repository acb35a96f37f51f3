package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// CartStorage mocks cart.Storage.
type CartStorage struct {
	mock.Mock
}

func (m *CartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartStorage) Save(ctx context.Context, key string, data []byte) error {
	return m.Called(ctx, key, data).Error(0)
}

func (m *CartStorage) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
